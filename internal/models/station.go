package models

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	FuelTypeE5     = "e5"
	FuelTypeE10    = "e10"
	FuelTypeDiesel = "diesel"

	// FuelTypeAll asks the provider for every grade at once; per-grade
	// filtering then happens locally.
	FuelTypeAll = "all"
)

var FuelTypes = []string{FuelTypeE5, FuelTypeE10, FuelTypeDiesel}

func IsValidFuelType(fuelType string) bool {
	for _, ft := range FuelTypes {
		if ft == fuelType {
			return true
		}
	}
	return false
}

// Price unmarshals a tankerkoenig price field. The upstream emits `null`
// or `false` for grades a station does not sell, so both decode to zero
// rather than failing the whole payload.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if string(trimmed) == "null" || string(trimmed) == "false" {
		*p = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

// Station is a raw record from the tankerkoenig radius search. Dist is
// provider-supplied (km from the search origin) and may be overwritten
// locally when the origin was given as raw coordinates.
type Station struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Street      string  `json:"street"`
	HouseNumber string  `json:"houseNumber"`
	PostCode    int     `json:"postCode"`
	Place       string  `json:"place"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Dist        float64 `json:"dist"`
	Diesel      Price   `json:"diesel"`
	E5          Price   `json:"e5"`
	E10         Price   `json:"e10"`
	// Price is only populated when the search requested a single grade
	// (type != "all").
	Price  Price `json:"price"`
	IsOpen bool  `json:"isOpen"`
}

// PriceFor returns the station's price for the requested grade, or zero
// when the grade is unknown or not sold here.
func (s *Station) PriceFor(fuelType string) float64 {
	switch fuelType {
	case FuelTypeE5:
		return float64(s.E5)
	case FuelTypeE10:
		return float64(s.E10)
	case FuelTypeDiesel:
		return float64(s.Diesel)
	default:
		return 0
	}
}

type StationListResponse struct {
	Ok       bool      `json:"ok"`
	License  string    `json:"license,omitempty"`
	Data     string    `json:"data,omitempty"`
	Status   string    `json:"status,omitempty"`
	Message  string    `json:"message,omitempty"`
	Stations []Station `json:"stations"`
}
