// Package config reads the service configuration from the environment.
package config

import "os"

type Config struct {
	// DBDriver is "postgres" or "sqlite".
	DBDriver string
	DBDSN    string
	Port     string

	// OIDC settings for the admin endpoints. Leave the issuer empty to run
	// the admin surface unprotected (local development, tests).
	OIDCIssuer   string
	OIDCClientID string

	// SessionFile is where client session snapshots are persisted.
	SessionFile string
}

func FromEnv() Config {
	cfg := Config{
		DBDriver:     getenv("DB_DRIVER", "postgres"),
		DBDSN:        getenv("DB_DSN", "host=postgres user=postgres password=postgres dbname=tienda port=5432 sslmode=disable"),
		Port:         getenv("PORT", "8080"),
		OIDCIssuer:   os.Getenv("OIDC_ISSUER"),
		OIDCClientID: os.Getenv("OIDC_CLIENT_ID"),
		SessionFile:  getenv("SESSION_FILE", "session.json"),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
