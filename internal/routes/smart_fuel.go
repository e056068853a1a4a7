package routes

import (
	"log"
	"math"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/hinwise/smart-tanken-api/internal"
	"github.com/hinwise/smart-tanken-api/internal/models"
	"github.com/hinwise/smart-tanken-api/internal/ranking"
	"github.com/hinwise/smart-tanken-api/internal/trend"
)

// SmartFuel ranks the stations around the resolved origin by hassle
// score and returns the top three deals with the regional context.
func SmartFuel(table models.PostcodeTable, client internal.StationClient) func(c *gin.Context) {
	return func(c *gin.Context) {
		origin, ok := resolveOrigin(c, table)
		if !ok {
			return
		}

		fuelType := c.DefaultQuery("fuel_type", models.FuelTypeE5)
		if !models.IsValidFuelType(fuelType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fuel_type must be one of: e5, e10, diesel"})
			return
		}

		radius, err := parseRadius(c, 5, 1, 25)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Always fetch all grades; the grade filter runs locally so a
		// single upstream lookup serves every fuel_type.
		stations, err := client.ListStations(c.Request.Context(), origin.Latitude, origin.Longitude, radius, models.FuelTypeAll)
		if err != nil {
			if errors.Is(err, internal.ErrProvider) {
				c.JSON(http.StatusBadGateway, gin.H{"error": "Provider Error", "message": err.Error()})
				return
			}
			log.Printf("error while fetching stations: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
			return
		}

		valid := ranking.Filter(stations, fuelType, origin)
		if len(valid) == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "No stations found with this fuel type in the selected range."})
			return
		}

		deals, avgPrice := ranking.Rank(valid, fuelType)
		now := time.Now()

		c.JSON(http.StatusOK, models.SmartFuelResponse{
			Metadata: models.SmartFuelMetadata{
				SearchOrigin: originLabel(origin),
				RegionalAvg:  math.Round(avgPrice*1000) / 1000,
				Trend:        trend.Current(now),
				Timestamp:    now.Format(time.RFC3339),
				Attribution:  internal.ATTRIBUTION,
			},
			BestDeals: deals,
		})
	}
}
