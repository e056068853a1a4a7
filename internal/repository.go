package internal

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"

	"github.com/tavsec/gin-healthcheck/checks"

	"github.com/hinwise/smart-tanken-api/internal/models"
)

//go:embed sql/insert_postcode.sql
var insertPostcodeSQL string

//go:embed sql/load_postcodes.sql
var loadPostcodesSQL string

// PostcodeRepository backs the PLZ lookup table. Writes only happen via
// the import command; the API server calls LoadAll once at startup and
// serves every request from the resulting immutable map.
type PostcodeRepository interface {
	InsertBatch(batch []*models.PostcodeEntry) (int, error)
	LoadAll() (models.PostcodeTable, error)
	Check() checks.Check
	Close() error
}

type sqliteRepository struct {
	db *sql.DB
}

func NewPostcodeRepository(db *sql.DB) PostcodeRepository {
	return &sqliteRepository{
		db: db,
	}
}

func (repo *sqliteRepository) InsertBatch(batch []*models.PostcodeEntry) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	tx, err := repo.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("error rolling back transaction: %v", rbErr)
			}
		}
	}()

	stmt, err := tx.Prepare(insertPostcodeSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Printf("failed to close statement: %v", err)
		}
	}()

	for _, entry := range batch {
		_, err = stmt.Exec(entry.ToTuple()...)
		if err != nil {
			return 0, fmt.Errorf("failed to execute individual insert: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(batch), nil
}

func (repo *sqliteRepository) LoadAll() (models.PostcodeTable, error) {
	rows, err := repo.db.Query(loadPostcodesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to execute load query: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	table := make(models.PostcodeTable)
	for rows.Next() {
		var entry models.PostcodeEntry
		if err := rows.Scan(&entry.PostalCode, &entry.Latitude, &entry.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		table[entry.PostalCode] = entry
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return table, nil
}

func (repo *sqliteRepository) Check() checks.Check {
	return checks.SqlCheck{Sql: repo.db}
}

func (repo *sqliteRepository) Close() error {
	return repo.db.Close()
}
