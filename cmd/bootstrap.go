package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rm-hull/godx"

	"github.com/hinwise/smart-tanken-api/internal"
)

// bootstrap initialises shared resources used by both the API server and import
// commands. It returns the provider client, a postcode repository, and an error
// if something failed during startup.
func bootstrap(dbPath string) (internal.StationClient, internal.PostcodeRepository, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	godx.GitVersion()
	godx.EnvironmentVars()
	godx.UserInfo()

	apiKey := os.Getenv("TANKER_API_KEY")

	client, err := internal.NewTankerClient(apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("tankerkoenig client setup failed: %w", err)
	}

	repo, err := openRepository(dbPath)
	if err != nil {
		return nil, nil, err
	}

	return client, repo, nil
}

// openRepository connects and migrates the postcode database. Split out
// from bootstrap because the import command has no use for a provider
// client (or a TANKER_API_KEY).
func openRepository(dbPath string) (internal.PostcodeRepository, error) {
	db, err := internal.Connect(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := internal.Migrate("migrations", dbPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate SQL: %w", err)
	}

	return internal.NewPostcodeRepository(db), nil
}
