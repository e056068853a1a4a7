// Package ranking filters raw station records and scores the cheapest
// candidates with the hassle score, a composite of distance penalty and
// price-savings reward where lower is better.
package ranking

import (
	"math"
	"sort"

	"github.com/hinwise/smart-tanken-api/internal/geo"
	"github.com/hinwise/smart-tanken-api/internal/models"
)

const (
	distanceWeight = 1.5
	savingsWeight  = 25.0

	goThreshold    = 1.0
	maybeThreshold = 3.0

	maxDeals = 3
)

// Filter keeps stations with a strictly positive price for the
// requested grade. For coordinate origins the provider distance is
// recomputed against the exact origin; for postcode origins the
// provider value (already measured from the PLZ centroid) stands.
// Empty input yields empty output.
func Filter(stations []models.Station, fuelType string, origin geo.Origin) []models.Station {
	kept := make([]models.Station, 0, len(stations))
	for _, s := range stations {
		if s.PriceFor(fuelType) <= 0 {
			continue
		}
		if origin.Kind == geo.OriginCoordinates {
			s.Dist = geo.Distance(origin.Latitude, origin.Longitude, s.Lat, s.Lng)
		}
		kept = append(kept, s)
	}
	return kept
}

// Rank sorts stations ascending by (price, distance) and scores the
// first three. The regional average is taken over the whole filtered
// list, not just the returned deals. Callers must handle the empty
// list before calling; fewer than three stations degrade gracefully.
func Rank(stations []models.Station, fuelType string) ([]models.RankedDeal, float64) {
	// Ties in both price and distance keep their input order.
	sort.SliceStable(stations, func(i, j int) bool {
		pi, pj := stations[i].PriceFor(fuelType), stations[j].PriceFor(fuelType)
		if pi != pj {
			return pi < pj
		}
		return stations[i].Dist < stations[j].Dist
	})

	sum := 0.0
	for _, s := range stations {
		sum += s.PriceFor(fuelType)
	}
	avgPrice := sum / float64(len(stations))

	n := len(stations)
	if n > maxDeals {
		n = maxDeals
	}

	deals := make([]models.RankedDeal, 0, n)
	for _, s := range stations[:n] {
		price := s.PriceFor(fuelType)
		savings := avgPrice - price
		score := math.Round((s.Dist*distanceWeight-savings*savingsWeight)*100) / 100

		deals = append(deals, models.RankedDeal{
			Name:        s.Name,
			Brand:       s.Brand,
			Price:       price,
			DistanceKm:  s.Dist,
			HassleScore: score,
			Verdict:     verdict(score),
		})
	}

	return deals, avgPrice
}

// Thresholds are strict upper bounds: a score of exactly 1.0 is MAYBE,
// exactly 3.0 is TOO FAR.
func verdict(score float64) string {
	switch {
	case score < goThreshold:
		return models.VerdictGo
	case score < maybeThreshold:
		return models.VerdictMaybe
	default:
		return models.VerdictTooFar
	}
}
