package models

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// PostcodeEntry is a single row of the PLZ lookup table: a 5-digit,
// zero-padded German postcode and the centroid coordinates of its area.
type PostcodeEntry struct {
	PostalCode string  `json:"plz"`
	Latitude   float64 `json:"lat"`
	Longitude  float64 `json:"lng"`
}

func (e *PostcodeEntry) ToTuple() []any {
	return []any{
		e.PostalCode,
		e.Latitude,
		e.Longitude,
	}
}

func (e *PostcodeEntry) ToCSV() []string {
	return []string{
		e.PostalCode,
		strconv.FormatFloat(e.Latitude, 'f', -1, 64),
		strconv.FormatFloat(e.Longitude, 'f', -1, 64),
	}
}

func PostcodeFromCSV(record, headers []string) (*PostcodeEntry, error) {
	if len(record) != 3 {
		return nil, errors.Newf("expected 3 fields, got %d", len(record))
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid latitude %q", record[1])
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid longitude %q", record[2])
	}

	return &PostcodeEntry{
		PostalCode: NormalizePostcode(record[0]),
		Latitude:   lat,
		Longitude:  lng,
	}, nil
}

// NormalizePostcode left-pads a postcode to the canonical 5-digit form.
// Saxon codes like "1067" lose their leading zero in most spreadsheet
// exports, so every lookup key passes through here.
func NormalizePostcode(code string) string {
	code = strings.TrimSpace(code)
	for len(code) < 5 {
		code = "0" + code
	}
	return code
}

// PostcodeTable is the in-memory PLZ lookup map. It is built once at
// startup and never mutated afterwards, so concurrent reads from any
// number of request handlers need no synchronisation.
type PostcodeTable map[string]PostcodeEntry

func (t PostcodeTable) Lookup(code string) (lat, lng float64, ok bool) {
	entry, ok := t[code]
	if !ok {
		return 0, 0, false
	}
	return entry.Latitude, entry.Longitude, true
}
