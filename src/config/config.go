package config

import "os"

// Config holds all runtime settings, read from the environment once at
// startup and treated as immutable afterwards.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   string
	Env         string
	CORSOrigins string
	// Base64 image uploads ride inside JSON bodies, so the limit is
	// far above fiber's 4 MB default.
	BodyLimit int
}

const defaultBodyLimit = 50 * 1024 * 1024

// Load reads the configuration from environment variables, applying
// development defaults for anything unset.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		MongoURI:    getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "linkhub"),
		JWTSecret:   getEnv("JWT_SECRET", "fallback-secret-key"),
		Env:         getEnv("APP_ENV", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000, http://127.0.0.1:3000"),
		BodyLimit:   defaultBodyLimit,
	}
}

// IsDevelopment controls whether internal error detail is exposed to
// clients.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
