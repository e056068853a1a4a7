package geo

import (
	"github.com/cockroachdb/errors"

	"github.com/hinwise/smart-tanken-api/internal"
	"github.com/hinwise/smart-tanken-api/internal/models"
)

type OriginKind int

const (
	OriginCoordinates OriginKind = iota
	OriginPostalCode
)

func (k OriginKind) String() string {
	if k == OriginPostalCode {
		return "postal_code"
	}
	return "coordinates"
}

// Origin is a resolved search origin: the coordinates to search from,
// tagged with how they were obtained. PostalCode is only set for
// OriginPostalCode origins.
type Origin struct {
	Latitude   float64
	Longitude  float64
	Kind       OriginKind
	PostalCode string
}

// Lookup resolves a normalized 5-digit postcode to coordinates.
// models.PostcodeTable.Lookup satisfies it.
type Lookup func(code string) (lat, lng float64, ok bool)

// Resolve turns raw request input into an Origin. Explicit coordinates
// win when both forms are supplied; otherwise the postcode is
// zero-padded and looked up. A lookup miss is ErrNotFound carrying the
// normalized code; neither input is ErrInvalidRequest.
func Resolve(plz string, lat, lng *float64, lookup Lookup) (Origin, error) {
	if lat != nil && lng != nil {
		return Origin{
			Latitude:  *lat,
			Longitude: *lng,
			Kind:      OriginCoordinates,
		}, nil
	}

	if plz != "" {
		code := models.NormalizePostcode(plz)
		latitude, longitude, ok := lookup(code)
		if !ok {
			return Origin{}, errors.Mark(errors.Newf("PLZ %s not found", code), internal.ErrNotFound)
		}
		return Origin{
			Latitude:   latitude,
			Longitude:  longitude,
			Kind:       OriginPostalCode,
			PostalCode: code,
		}, nil
	}

	return Origin{}, errors.Mark(
		errors.New("you must provide either 'plz' or both 'lat' and 'lng'"),
		internal.ErrInvalidRequest)
}
