package config

import "os"

// parseEnv overlays Config with values from the environment. Unset variables
// leave the current value untouched.
//
// Recognized variables:
//
//	NOTEBOARD_USERS_URL      — identity service base address
//	NOTEBOARD_NOTES_URL      — notes service base address
//	NOTEBOARD_ANALYTICS_URL  — analytics service base address
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("NOTEBOARD_USERS_URL"); ok {
		cfg.UsersURL = v
	}
	if v, ok := os.LookupEnv("NOTEBOARD_NOTES_URL"); ok {
		cfg.NotesURL = v
	}
	if v, ok := os.LookupEnv("NOTEBOARD_ANALYTICS_URL"); ok {
		cfg.AnalyticsURL = v
	}
}
