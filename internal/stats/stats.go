package stats

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/hinwise/smart-tanken-api/internal"
	"github.com/hinwise/smart-tanken-api/internal/models"
)

// Surcharge model: a linear markup anchored at a 1.50 EUR/l baseline in
// 0.10 EUR bands, 1.5 percentage points per band, floored at zero. The
// constants are a fixed business heuristic and not configurable.
const (
	surchargeBaseline   = 1.50
	surchargeBand       = 0.10
	surchargeMultiplier = 1.5
)

// Derive computes the regional market snapshot over an already-filtered
// price list (every entry strictly positive). An empty list is
// ErrEmptyResult, keeping division by zero out of the mean.
func Derive(prices []float64, regionLabel string, stationsScanned int) (*models.MarketSnapshot, error) {
	if len(prices) == 0 {
		return nil, errors.Mark(errors.New("no price data available"), internal.ErrEmptyResult)
	}

	low := prices[0]
	high := prices[0]
	sum := 0.0
	for _, p := range prices {
		if p < low {
			low = p
		}
		if p > high {
			high = p
		}
		sum += p
	}
	avgPrice := sum / float64(len(prices))

	surcharge := math.Round(((avgPrice-surchargeBaseline)/surchargeBand)*surchargeMultiplier*100) / 100

	return &models.MarketSnapshot{
		RegionLabel:           regionLabel,
		StationsScanned:       stationsScanned,
		AveragePrice:          math.Round(avgPrice*1000) / 1000,
		MinPrice:              low,
		MaxPrice:              high,
		SuggestedSurchargePct: math.Max(0, surcharge),
	}, nil
}
