package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT        JWTConfig
	SuperAdmin SuperAdminConfig
	Mongo      MongoConfig
	Redis      RedisConfig
}

type JWTConfig struct {
	// Key is the HS256 signing secret. Startup fails without it.
	Key           string `env:"JWT_SECRET"`
	Issuer        string `env:"JWT_ISSUER,         default=identity-api"`
	Audience      string `env:"JWT_AUDIENCE,       default=identity-api-clients"`
	ExpiryMinutes int    `env:"JWT_EXPIRY_MINUTES, default=60"`
}

// SuperAdminConfig seeds the root account at startup. Seeding is skipped
// when Email or Password is unset.
type SuperAdminConfig struct {
	Email    string `env:"SUPERADMIN_EMAIL"`
	Password string `env:"SUPERADMIN_PASSWORD"`
	Name     string `env:"SUPERADMIN_NAME, default=Super Admin"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
