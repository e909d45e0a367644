package internal

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Host                 string        `env:"HOST,default=0.0.0.0"`
	Port                 int           `env:"PORT,required=true"`
	HealthPort           int           `env:"HEALTH_PORT,required=true"`
	DebugPort            int           `env:"DEBUG_PORT,default=8081"`
	TokenSecret          string        `env:"TOKEN_SECRET,required=true"`
	TokenIssuer          string        `env:"TOKEN_ISSUER"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	HandlerTimeout       time.Duration `env:"HANDLER_TIMEOUT,default=5s"`
	DeliveryTimeout      time.Duration `env:"DELIVERY_TIMEOUT,default=10s"`
	PongWait             time.Duration `env:"PONG_WAIT,default=60s"`
	ReadLimit            int64         `env:"READ_LIMIT,default=65536"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=15s"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	CORSWhitelist        string        `env:"CORS_WHITELIST"`
}

// Validate catches values the tags cannot express.
func (c Config) Validate() error {
	if len(c.TokenSecret) < 32 {
		return fmt.Errorf("TOKEN_SECRET must hold at least 32 bytes, got %d", len(c.TokenSecret))
	}
	if c.ConnectionBufferSize <= 0 {
		return fmt.Errorf("CONNECTION_BUFFER_SIZE must be positive, got %d", c.ConnectionBufferSize)
	}
	for name, d := range map[string]time.Duration{
		"HANDLER_TIMEOUT":  c.HandlerTimeout,
		"DELIVERY_TIMEOUT": c.DeliveryTimeout,
		"PONG_WAIT":        c.PongWait,
		"METRIC_INTERVAL":  c.MetricInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	return nil
}

// Origins splits CORS_WHITELIST on commas.
func (c Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSWhitelist, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
