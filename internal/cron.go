package internal

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/hinwise/smart-tanken-api/internal/models"
)

// Keep in step with the client's memoize TTL so hub lookups never hit a
// cold cache during busy hours.
const CRON_SCHEDULE_PREWARM = "*/5 * * * *"

// Hub postcodes whose radius searches are kept warm: the six largest
// German metro areas plus Dresden.
var hubPostcodes = []string{"10115", "20095", "80331", "50667", "60311", "70173", "01067"}

const hubRadiusKm = 5

// StartCron schedules the cache pre-warm over the hub regions. Provider
// failures are logged and skipped; the next tick tries again.
func StartCron(client StationClient, table models.PostcodeTable) (*cron.Cron, error) {
	c := cron.New()

	log.Print("Starting CRON job to pre-warm station lookups for hub regions")

	if _, err := c.AddFunc(CRON_SCHEDULE_PREWARM, func() {
		warmed := 0
		for _, plz := range hubPostcodes {
			lat, lng, ok := table.Lookup(plz)
			if !ok {
				continue
			}
			if _, err := client.ListStations(context.Background(), lat, lng, hubRadiusKm, models.FuelTypeAll); err != nil {
				log.Printf("Error pre-warming PLZ %s: %v", plz, err)
				continue
			}
			warmed++
		}
		log.Printf("Pre-warmed station lookups for %d hub regions", warmed)
	}); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
