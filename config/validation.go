package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that the configuration is usable for the current
// environment. Development and test environments get defaults for almost
// everything; production refuses to start without credentials.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET (or the jwt_secret secret) is required")
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			errors = append(errors, "db_password secret is required in production")
		}
		if cfg.DBSSLMode == "disable" {
			errors = append(errors, "DB_SSL_MODE must not be 'disable' in production")
		}
		if cfg.RecommenderURL == "" {
			errors = append(errors, "RECOMMENDER_URL is required in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}
	return nil
}
