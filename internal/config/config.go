// Package config provides configuration loading for the RAML converter.
package config

import (
	configloader "github.com/GabrielNunesIT/go-libs/config-loader"
)

// EnvPrefix prefixes the environment variables read into Config.
const EnvPrefix = "RAML_CONVERTER_"

// Config holds the application configuration.
type Config struct {
	// FolderStrategy is "paths" or "flat".
	FolderStrategy   string       `koanf:"folder_strategy"`
	DeterministicIDs bool         `koanf:"deterministic_ids"`
	Format           string       `koanf:"format"`
	OutputDir        string       `koanf:"output_dir"`
	Server           ServerConfig `koanf:"server"`
}

// ServerConfig configures the HTTP import endpoint.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		FolderStrategy: "paths",
		Format:         "json",
		OutputDir:      ".",
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load returns the application configuration using go-libs config-loader.
// Environment variables such as RAML_CONVERTER_FORMAT override the defaults.
func Load() (*Config, error) {
	loader := configloader.NewConfigLoader(
		configloader.WithDefaults(Defaults()),
		configloader.WithEnv[Config](EnvPrefix),
	)

	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
