// Command trial_reminder sends the trial ending mails once, for use from cron.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"theroom/internal/app"
	"theroom/internal/config"
	"theroom/internal/database"
	"theroom/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	observability.SetupGlobal(cfg.AppEnv)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
	} else {
		log.Warn().Msg("REDIS_ADDR not set, reruns on the same day may send duplicates")
	}

	a, err := app.New(cfg, db, app.Options{Redis: rdb})
	if err != nil {
		log.Fatal().Err(err).Msg("app init failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	res, err := a.Reminder.Run(ctx, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("trial reminder failed")
	}
	log.Info().
		Int("due", res.Due).
		Int("sent", res.Sent).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Msg("trial reminder completed")
}
