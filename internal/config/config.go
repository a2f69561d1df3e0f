// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order):
//  1. Environment variables (optionally via a .env file)
//  2. A YAML file named by CONFIG_PATH or the --config flag
//  3. Struct defaults
package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure. Every field maps to a key
// in the YAML file AND can be overridden by the corresponding
// environment variable (env:"...").
type Config struct {
	// Env controls log verbosity. Valid values: "dev", "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// DataDir is the directory holding rooms.json and students.json.
	DataDir string `yaml:"data_dir" env:"DATA_DIR" env-default:"data"`

	// HTTPServer is embedded so its fields promote onto Config.
	HTTPServer `yaml:"http_server"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:":8080"`
}

// MustLoad reads, validates, and returns the application config.
// Per Go convention, "Must" means it terminates the process on failure —
// if this returns, the config is usable.
func MustLoad() *Config {
	// A .env file is optional; real environment variables win either way.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env file")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		flagPath := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flagPath
	}

	var cfg Config
	if configPath == "" {
		// No YAML file: environment variables plus defaults are enough
		// to run, so a config file is not mandatory.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err)
		}
		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
