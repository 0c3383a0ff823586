package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port         string `env:"PORT" env-default:"3000"`
	PostgresURI  string `env:"POSTGRESQL_URI"`
	JWTSecret    string `env:"JWT_SECRET" env-default:"dev-secret-change-me"`
	CookieName   string `env:"SESSION_COOKIE" env-default:"session_id"`
	SeedDemoData bool   `env:"SEED_DEMO_DATA" env-default:"true"`
	AllowOrigins string `env:"CORS_ALLOW_ORIGINS" env-default:"*"`
}

// LoadENV loads a .env file when one is present. A missing file is not
// an error; deployments set real environment variables instead.
func LoadENV() error {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Load reads the typed configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
