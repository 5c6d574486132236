package config

import (
	"flag"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultRunAddress      = ":8080"
	DefaultOrderAPIAddress = "http://localhost:4000"
	DefaultDatabaseURI     = ""
	DefaultSecretKey       = "secret"
	DefaultSessionLifetime = 2 * time.Hour
	DefaultRetryMax        = 2
	DefaultRetryBaseDelay  = 300 * time.Millisecond
	DefaultRequestTimeout  = 10 * time.Second
)

type Config struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	OrderAPIAddress string        `env:"ORDER_API_ADDRESS"`
	DatabaseURI     string        `env:"DATABASE_URI"`
	SecretKey       string        `env:"SECRET_KEY"`
	SessionLifetime time.Duration `env:"SESSION_LIFETIME"`
	RetryMax        int           `env:"RETRY_MAX"`
	RetryBaseDelay  time.Duration `env:"RETRY_BASE_DELAY"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"`
	WarmupShopIDs   []string      `env:"WARMUP_SHOP_IDS" envSeparator:","`
}

func Read() (Config, error) {
	config := Config{}

	var warmupShopIDs string

	flag.StringVar(&config.RunAddress, "a", DefaultRunAddress, "Server run address")
	flag.StringVar(&config.OrderAPIAddress, "r", DefaultOrderAPIAddress, "Order API address protocol://hostname:port")
	flag.StringVar(&config.DatabaseURI, "d", DefaultDatabaseURI, "Database connect string (empty - in-memory confirmations)")

	flag.StringVar(&config.SecretKey, "s", DefaultSecretKey, "Secret key for session token")
	flag.DurationVar(&config.SessionLifetime, "h", DefaultSessionLifetime, "Session token lifetime (e.g. 1h, 30m, 2h30m)")

	flag.IntVar(&config.RetryMax, "m", DefaultRetryMax, "Max retries for order API GET requests")
	flag.DurationVar(&config.RetryBaseDelay, "b", DefaultRetryBaseDelay, "Base delay for exponential backoff")
	flag.DurationVar(&config.RequestTimeout, "t", DefaultRequestTimeout, "Order API request timeout")
	flag.StringVar(&warmupShopIDs, "w", "", "Comma separated shop ids to prefetch on start")

	flag.Parse()

	config.WarmupShopIDs = splitList(warmupShopIDs)

	err := env.Parse(&config)
	if err != nil {
		return config, err
	}

	config.WarmupShopIDs = splitList(strings.Join(config.WarmupShopIDs, ","))

	return config, nil
}

func splitList(s string) []string {
	var result []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
