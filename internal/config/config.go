package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBDSN       string
	LogFile     string
	MirrorURL   string // base URL of the blob mirror; empty disables mirroring
	MirrorToken string
	SweepSpec   string // cron spec for the expiring-rentals sweep
	SeedDemo    bool   // insert demo equipment on an empty store
}

func Load() Config {
	// Optional .env for local runs; env vars win.
	if err := godotenv.Load(); err == nil {
		log.Println("[config] loaded .env")
	}

	cfg := Config{
		Port:        getenv("PORT", "8080"),
		DBDSN:       getenv("DB_DSN", "marrent.db"), // sqlite file in project root
		LogFile:     getenv("LOG_FILE", "./marrent.log"),
		MirrorURL:   os.Getenv("MIRROR_URL"),
		MirrorToken: os.Getenv("MIRROR_TOKEN"),
		SweepSpec:   getenv("SWEEP_SPEC", "0 8 * * *"), // daily 08:00 UTC
		SeedDemo:    os.Getenv("SEED_DEMO") == "1",
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s MIRROR=%v",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.MirrorURL != "")
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
