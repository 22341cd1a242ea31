package config

import (
	"fmt"

	"github.com/Netflix/go-env"
)

// Config is loaded once at process start and passed by reference into
// each constructor. Nothing reads the environment after startup.
type Config struct {
	DatabaseDSN    string `env:"DATABASE_DSN,required=true"`
	RedisURL       string `env:"REDIS_URL,required=true"`
	ResendAPIKey   string `env:"RESEND_API_KEY,required=true"`
	ResendEndpoint string `env:"RESEND_ENDPOINT,default=https://api.resend.com"`
	AuthURL        string `env:"AUTH_URL,required=true"`
	AuthServiceKey string `env:"AUTH_SERVICE_KEY,required=true"`
	SiteURL        string `env:"SITE_URL,default=https://mystar.co.il"`
	FromEmail      string `env:"FROM_EMAIL,default=orders@bitshop.co.il"`
	ReplyToEmail   string `env:"REPLY_TO_EMAIL,default=support@bitshop.co.il"`
	SendRatePerMin int    `env:"SEND_RATE_PER_MIN,default=60"`
	APIPort        int    `env:"API_PORT,default=8080"`
	LogLevel       string `env:"LOG_LEVEL,default=info"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
