package main

import (
	"log"
	"os"
	"time"
)

type Environment struct {
	Environment    string
	ServerAddress  string
	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string

	PollInterval time.Duration
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	env := Environment{
		Environment:   os.Getenv("APP_ENV"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		ServerAddress: os.Getenv("SERVER_ADDRESS"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),

		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	if env.ServerAddress == "" {
		env.ServerAddress = ":8080"
	}
	if env.MigrationsPath == "" {
		env.MigrationsPath = "./migrations"
	}

	if raw := os.Getenv("POLL_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("invalid POLL_INTERVAL %q: %v", raw, err)
		}
		env.PollInterval = d
	}

	// Basic validation
	if env.DatabaseURL == "" {
		log.Fatal("Missing required environment variables")
	}

	return env
}
