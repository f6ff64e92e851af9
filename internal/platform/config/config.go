// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds every externally supplied setting. It is loaded once in the
// composition root and passed down explicitly; no package reads the
// environment on its own.
type Config struct {
	HTTP HTTPConfig
	DB   DBConfig
	JWT  JWTConfig
}

// HTTPConfig configures the HTTP listener.
type HTTPConfig struct {
	Port string `env:"PORT" env-default:"8080"`
}

// DBConfig configures the MySQL connection.
type DBConfig struct {
	User     string `env:"DB_USER" env-default:"root"`
	Password string `env:"DB_PASSWORD"`
	Host     string `env:"DB_HOST" env-default:"127.0.0.1"`
	Port     string `env:"DB_PORT" env-default:"3306"`
	Name     string `env:"DB_NAME" env-default:"users"`

	// RunMigrations gates AutoMigrate on startup.
	RunMigrations bool `env:"RUN_MIGRATIONS" env-default:"false"`
}

// JWTConfig configures token signing.
type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET"`
	Expiration time.Duration `env:"JWT_EXPIRATION" env-default:"1h"`
}

// DSN renders the MySQL connection string for the gorm driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}
