package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/social-watch/rumour-tracker/src/api/config"
	"github.com/social-watch/rumour-tracker/src/api/data"
	"github.com/social-watch/rumour-tracker/src/api/webserver"
)

func main() {
	// Connect to database first
	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		mysqlDSN = "rumour:rumour@tcp(localhost:3306)/rumourwatch?parseTime=true"
	}
	db := data.MustMySQL(mysqlDSN)

	if err := data.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if os.Getenv("SEED_DB") == "1" {
		if err := data.Seed(db); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	// Load settings from database (panic threshold override lives here)
	if err := data.LoadSettings(db); err != nil {
		log.Printf("Failed to load settings: %v", err)
	}

	cfg := config.Load()

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = data.MustRedis(cfg.RedisURL)
	} else {
		log.Printf("REDIS_URL not set, report event feed disabled")
	}

	router := webserver.New(cfg, db, rdb)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		var err error
		if cfg.EnableSSL {
			log.Printf("Starting HTTPS server on port %s", cfg.Port)
			err = httpSrv.ListenAndServeTLS(cfg.SSLCert, cfg.SSLKey)
		} else {
			log.Printf("Starting HTTP server on port %s", cfg.Port)
			err = httpSrv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	log.Printf("RumourWatch API listening on %s (panic threshold: %d)", cfg.Port, cfg.PanicThreshold)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
