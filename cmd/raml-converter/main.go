// Package main provides the entry point for the RAML converter CLI.
package main

import (
	"os"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/joho/godotenv"

	"github.com/GabrielNunesIT/raml-converter/internal/cli"
	"github.com/GabrielNunesIT/raml-converter/internal/config"
)

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	log := logger.NewConsoleLogger(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.Errorf("Error: %v", err)
		os.Exit(1)
	}

	app := cli.New(log, cfg)
	if err := app.Execute(); err != nil {
		log.Errorf("Error: %v", err)
		os.Exit(1)
	}
}
