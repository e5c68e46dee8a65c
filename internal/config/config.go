package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken    string  `envconfig:"BOT_TOKEN" required:"true"`
	AdminIDs    []int64 `envconfig:"ADMIN_IDS" required:"true"`
	DBPath      string  `envconfig:"DB_PATH" default:"./data/truckbot.db"`
	RatesURL    string  `envconfig:"RATES_URL" default:"https://cbu.uz/uz/arkhiv-kursov-valyut/json/all/"`
	HTTPAddr    string  `envconfig:"HTTP_ADDR" default:":8080"` // healthz
	LogLevel    string  `envconfig:"LOG_LEVEL" default:"info"`  // debug|info|warn|error
	SendWorkers int     `envconfig:"SEND_WORKERS" default:"4"`  // broadcast fan-out concurrency
	SendPerSec  int     `envconfig:"SEND_PER_SEC" default:"20"` // outbound message rate limit
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// IsAdmin reports whether id is a configured administrator.
func (c Config) IsAdmin(id int64) bool {
	for _, a := range c.AdminIDs {
		if a == id {
			return true
		}
	}
	return false
}
