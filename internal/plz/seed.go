// Package plz ships a seed PLZ dataset covering the major German city
// centres, used to bootstrap the lookup table when no full dataset has
// been imported yet.
package plz

import (
	_ "embed"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/hinwise/smart-tanken-api/internal"
	"github.com/hinwise/smart-tanken-api/internal/models"
)

//go:embed plz_data.csv
var plzCSV string

func SeedEntries() ([]*models.PostcodeEntry, error) {
	arr := make([]*models.PostcodeEntry, 0, 50)
	reader := strings.NewReader(plzCSV)

	for record := range internal.ParseCSV(reader, false, models.PostcodeFromCSV) {
		if record.Error != nil {
			return nil, errors.Wrap(record.Error, "failed to load seed postcodes")
		}
		arr = append(arr, record.Value)
	}

	return arr, nil
}

func SeedTable() (models.PostcodeTable, error) {
	entries, err := SeedEntries()
	if err != nil {
		return nil, err
	}

	table := make(models.PostcodeTable, len(entries))
	for _, entry := range entries {
		if _, ok := table[entry.PostalCode]; ok {
			return nil, errors.Newf("duplicate postcode detected: %s", entry.PostalCode)
		}
		table[entry.PostalCode] = *entry
	}

	return table, nil
}
