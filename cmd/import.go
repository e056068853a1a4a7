package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/hinwise/smart-tanken-api/internal"
	"github.com/hinwise/smart-tanken-api/internal/models"
	"github.com/hinwise/smart-tanken-api/internal/plz"
)

// Import loads postcode centroids into the lookup database, either from
// a CSV file (plz,lat,lng rows, no header) or from the embedded seed
// dataset when no path is given. Existing codes are overwritten.
func Import(dbPath, csvPath string) error {

	repo, err := openRepository(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.Printf("failed to close repository: %v", err)
		}
	}()

	entries, err := loadEntries(csvPath)
	if err != nil {
		return err
	}

	n, err := repo.InsertBatch(entries)
	if err != nil {
		return fmt.Errorf("failed to import postcodes: %w", err)
	}
	log.Printf("imported %d postcodes", n)

	return nil
}

func loadEntries(csvPath string) ([]*models.PostcodeEntry, error) {
	if csvPath == "" {
		log.Println("no CSV file given, importing embedded seed dataset")
		return plz.SeedEntries()
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("failed to close CSV file: %v", err)
		}
	}()

	entries := make([]*models.PostcodeEntry, 0, 8192)
	for record := range internal.ParseCSV(f, false, models.PostcodeFromCSV) {
		if record.Error != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", csvPath, record.Error)
		}
		entries = append(entries, record.Value)
	}

	return entries, nil
}
