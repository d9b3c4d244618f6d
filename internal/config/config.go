// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

// Server holds everything the backend needs to start.
type Server struct {
	ListenAddr string        `env:"GYMSTREAM_ADDR,default=:8080"`
	DataDir    string        `env:"GYMSTREAM_DATA_DIR,default=./data"`
	JWTSecret  string        `env:"GYMSTREAM_JWT_SECRET,default=gymstream-dev-secret-change-me"`
	TokenTTL   time.Duration `env:"GYMSTREAM_TOKEN_TTL,default=24h"`
	LogFile    string        `env:"GYMSTREAM_LOG_FILE"` // empty = stderr only
	LogLevel   string        `env:"GYMSTREAM_LOG_LEVEL,default=info"`
}

// Load decodes the server configuration from environment variables.
func Load() (Server, error) {
	var cfg Server
	if err := envdecode.Decode(&cfg); err != nil {
		return Server{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
