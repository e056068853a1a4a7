package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/hinwise/smart-tanken-api/cmd"
)

func main() {
	var dbPath string
	var port int
	var debug bool
	var csvPath string

	rootCmd := &cobra.Command{
		Use:   "smart-tanken",
		Short: "Intelligence-driven fuel pricing and logistics benchmarking for Germany",
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "data/smart_tanken.db", "path to the postcode sqlite database")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.ApiServer(dbPath, port, debug)
		},
	}
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	serveCmd.Flags().BoolVar(&debug, "debug", false, "expose pprof endpoints")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import postcode centroids into the lookup database",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.Import(dbPath, csvPath)
		},
	}
	importCmd.Flags().StringVar(&csvPath, "csv", "", "CSV file with plz,lat,lng rows (defaults to the embedded seed dataset)")

	rootCmd.AddCommand(serveCmd, importCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
