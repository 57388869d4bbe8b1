package config

import (
	"log"
	"os"
	"strconv"

	"github.com/social-watch/rumour-tracker/src/api/data"
)

type Config struct {
	MySQLDSN       string
	RedisURL       string
	Port           string
	PanicThreshold int
	EnableSSL      bool
	SSLCert        string
	SSLKey         string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

// Load reads configuration from the environment. The panic threshold can be
// overridden by a "panic_threshold" row in the settings table, which wins
// over the environment (data.LoadSettings must have run first).
func Load() Config {
	threshold, err := strconv.Atoi(getenv("PANIC_THRESHOLD", "5"))
	if err != nil || threshold < 1 {
		log.Fatalf("invalid PANIC_THRESHOLD")
	}
	if v := data.GetSetting("panic_threshold"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			threshold = n
		}
	}

	cfg := Config{
		MySQLDSN:       getenv("MYSQL_DSN", "rumour:rumour@tcp(localhost:3306)/rumourwatch?parseTime=true"),
		RedisURL:       os.Getenv("REDIS_URL"),
		Port:           getenv("PORT", "8080"),
		PanicThreshold: threshold,
		SSLCert:        os.Getenv("SSL_CERT"),
		SSLKey:         os.Getenv("SSL_KEY"),
	}
	cfg.EnableSSL = cfg.SSLCert != "" && cfg.SSLKey != ""
	return cfg
}
