package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	expected := map[int]string{
		0: Stable, 1: Stable, 2: Stable, 3: Stable, 4: Stable, 5: Stable,
		6: Rising, 7: Rising, 8: Rising, 9: Rising, 10: Rising,
		11: Stable,
		12: Falling, 13: Falling, 14: Falling, 15: Falling,
		16: Stable, 17: Stable,
		18: Low, 19: Low, 20: Low, 21: Low,
		22: Stable, 23: Stable,
	}

	for hour := 0; hour < 24; hour++ {
		assert.Equal(t, expected[hour], Classify(hour), "hour %d", hour)
	}
}

func TestCurrent(t *testing.T) {
	morning := time.Date(2025, 6, 12, 8, 30, 0, 0, time.Local)
	assert.Equal(t, Rising, Current(morning))

	night := time.Date(2025, 6, 12, 23, 0, 0, 0, time.Local)
	assert.Equal(t, Stable, Current(night))
}
