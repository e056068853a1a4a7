package routes

import (
	"log"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/hinwise/smart-tanken-api/internal"
	"github.com/hinwise/smart-tanken-api/internal/geo"
	"github.com/hinwise/smart-tanken-api/internal/models"
	"github.com/hinwise/smart-tanken-api/internal/stats"
)

// DieselIndex derives the regional diesel market snapshot: min/avg/max
// over all stations in the radius plus a suggested logistics surcharge.
func DieselIndex(table models.PostcodeTable, client internal.StationClient) func(c *gin.Context) {
	return func(c *gin.Context) {
		origin, ok := resolveOrigin(c, table)
		if !ok {
			return
		}

		radius, err := parseRadius(c, 15, 5, 50)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		stations, err := client.ListStations(c.Request.Context(), origin.Latitude, origin.Longitude, radius, models.FuelTypeDiesel)
		if err != nil {
			if errors.Is(err, internal.ErrProvider) {
				c.JSON(http.StatusBadGateway, gin.H{"error": "Provider Error", "message": err.Error()})
				return
			}
			log.Printf("error while fetching diesel prices: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
			return
		}

		prices := dieselPrices(stations)

		snapshot, err := stats.Derive(prices, regionLabel(origin), len(prices))
		if err != nil {
			if errors.Is(err, internal.ErrEmptyResult) {
				c.JSON(http.StatusOK, gin.H{"error": "No diesel data available."})
				return
			}
			log.Printf("error while deriving diesel index: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
			return
		}

		c.JSON(http.StatusOK, models.DieselIndexResponse{
			IndexMetadata: models.IndexMetadata{
				Region:          snapshot.RegionLabel,
				StationsScanned: snapshot.StationsScanned,
			},
			MarketRates: models.MarketRates{
				AverageIndex: snapshot.AveragePrice,
				Low:          snapshot.MinPrice,
				High:         snapshot.MaxPrice,
			},
			LogisticsTools: models.LogisticsTools{
				SuggestedSurchargePct: snapshot.SuggestedSurchargePct,
			},
			Attribution: internal.ATTRIBUTION,
		})
	}
}

// With type=diesel the provider reports the value in the generic
// "price" field, but some responses still use the grade name, so fall
// back to "diesel" when "price" yields nothing.
func dieselPrices(stations []models.Station) []float64 {
	prices := make([]float64, 0, len(stations))
	for _, s := range stations {
		if s.Price > 0 {
			prices = append(prices, float64(s.Price))
		}
	}
	if len(prices) == 0 {
		for _, s := range stations {
			if s.Diesel > 0 {
				prices = append(prices, float64(s.Diesel))
			}
		}
	}
	return prices
}

func regionLabel(origin geo.Origin) string {
	if origin.Kind == geo.OriginPostalCode {
		return origin.PostalCode
	}
	return "Coords"
}
