package utils

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultServerBaseURL is the fallback when neither the environment nor a
// flag provides one.
const DefaultServerBaseURL = "http://localhost:8080"

// Config holds the runtime settings shared by the CLI commands.
type Config struct {
	ServerBaseURL string
	LogFile       string
}

// LoadConfig reads an optional .env file and then the environment.
// DOCEMARCE_SERVER overrides the server base URL; DOCEMARCE_LOG names an
// optional log file.
func LoadConfig() Config {
	// Missing .env is fine; env vars still apply.
	_ = godotenv.Load()

	cfg := Config{ServerBaseURL: DefaultServerBaseURL}
	if env := os.Getenv("DOCEMARCE_SERVER"); env != "" {
		cfg.ServerBaseURL = strings.TrimRight(env, "/")
	}
	cfg.LogFile = os.Getenv("DOCEMARCE_LOG")
	return cfg
}
