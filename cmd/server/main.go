package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pharos-signage/pharos/internal/db"
	"github.com/pharos-signage/pharos/internal/executor"
	"github.com/pharos-signage/pharos/internal/notify"
	"github.com/pharos-signage/pharos/internal/redis"
	"github.com/pharos-signage/pharos/internal/schedule"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	env := LoadEnvironment()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	var notifier notify.Notifier = notify.Noop{}
	if env.MQTTBrokerURL != "" {
		mqttNotifier, err := notify.NewMQTTNotifier(env.MQTTBrokerURL, "pharos-server")
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt init failed")
		}
		defer mqttNotifier.Close()
		notifier = mqttNotifier
	}

	store := db.NewStore()
	exec := executor.New(store, schedule.RealClock{}, notifier, env.PollInterval)

	// every paired screen gets a poller; unpaired screens pick one up when
	// they pair
	screens, err := store.ListScreens()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list screens")
	}
	for _, s := range screens {
		if s.Paired {
			exec.Start(s.ID)
		}
	}

	r := gin.Default()
	RegisterRoutes(r, store, exec)

	go func() {
		log.Info().Str("address", env.ServerAddress).Msg("listening")
		if err := r.Run(env.ServerAddress); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	exec.StopAll()
}
