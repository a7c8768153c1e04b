package main

import (
	"log"

	"artifact-tracker-backend/internal/config"
)

// Config holds the worker-only settings; shared settings come from the container
type Config struct {
	Redis       config.RedisConfig
	Concurrency int
	HealthPort  string
}

func loadConfig(base *config.Config) *Config {
	cfg := &Config{
		Redis:       base.Redis,
		Concurrency: getEnvInt("WORKER_CONCURRENCY", 10),
		HealthPort:  getEnv("WORKER_HEALTH_PORT", "9999"),
	}

	log.Printf("[Config] Redis: %s, Concurrency: %d", cfg.Redis.Host, cfg.Concurrency)

	return cfg
}
