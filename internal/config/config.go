package config

import "os"

// Config holds everything the app reads from the environment. Relay settings
// are required for checkout to work; their absence is a deployment error and
// is checked once at startup.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	RedisAddr   string

	RelayBaseURL  string
	RelayToken    string
	RelayReceiver string
}

func Load() Config {
	return Config{
		Addr:          getenv("ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RelayBaseURL:  os.Getenv("WHATSAPP_API_URL"),
		RelayToken:    os.Getenv("WHATSAPP_API_TOKEN"),
		RelayReceiver: os.Getenv("WHATSAPP_RECEIVER_PHONE"),
	}
}

// MissingRelaySettings reports which relay keys are unset so main can fail
// with a readable message instead of a broken checkout later.
func (c Config) MissingRelaySettings() []string {
	var missing []string
	if c.RelayBaseURL == "" {
		missing = append(missing, "WHATSAPP_API_URL")
	}
	if c.RelayToken == "" {
		missing = append(missing, "WHATSAPP_API_TOKEN")
	}
	if c.RelayReceiver == "" {
		missing = append(missing, "WHATSAPP_RECEIVER_PHONE")
	}
	return missing
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
