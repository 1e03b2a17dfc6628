package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that stand in for CLI flags the user did not set.
const (
	EnvFPS    = "COWDODGE_FPS"
	EnvSeed   = "COWDODGE_SEED"
	EnvDB     = "COWDODGE_DB"
	EnvConfig = "COWDODGE_CONFIG"
)

// Overrides holds runtime settings read from the environment.
// Nil pointers and empty strings mean "not set".
type Overrides struct {
	FPS        *int
	Seed       *int64
	DBPath     string
	ConfigPath string
}

// LoadDotEnv loads variables from the given .env files (default ".env").
// Missing files are skipped; variables already in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("config: cannot load %v: %w", existing, err)
	}
	return nil
}

// ReadOverrides parses the COWDODGE_* variables.
func ReadOverrides() (Overrides, error) {
	var o Overrides

	if v, ok := os.LookupEnv(EnvFPS); ok && v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil || fps <= 0 {
			return o, fmt.Errorf("config: %s=%q is not a positive integer", EnvFPS, v)
		}
		o.FPS = &fps
	}

	if v, ok := os.LookupEnv(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return o, fmt.Errorf("config: %s=%q: %w", EnvSeed, v, err)
		}
		o.Seed = &seed
	}

	o.DBPath = os.Getenv(EnvDB)
	o.ConfigPath = os.Getenv(EnvConfig)
	return o, nil
}
