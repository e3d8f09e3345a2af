package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"theroom/internal/app"
	"theroom/internal/config"
	"theroom/internal/database"
	"theroom/internal/domain/room"
	"theroom/internal/domain/tenant"
	"theroom/internal/observability"
	"theroom/internal/pkg/localized"
)

const (
	demoEmail    = "demo@theroom.local"
	demoPassword = "demo123"
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
	if err := app.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	a, err := app.New(cfg, db, app.Options{})
	if err != nil {
		log.Fatal().Err(err).Msg("app init failed")
	}

	ctx := context.Background()
	tenants := tenant.NewRepository(db)
	if existing, err := tenants.GetByEmail(ctx, demoEmail); err == nil {
		log.Info().Str("hotel_id", existing.ID).Msg("demo hotel already exists, nothing to do")
		return
	} else if !errors.Is(err, tenant.ErrTenantNotFound) {
		log.Fatal().Err(err).Msg("lookup failed")
	}

	hash, err := tenant.HashPassword(demoPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("hash failed")
	}
	trialEnds := time.Now().UTC().Add(cfg.TrialPeriod)
	hotel := &tenant.Tenant{
		Name:         "Demo Otel",
		AdminEmail:   demoEmail,
		PasswordHash: hash,
		IsVerified:   true,
		Subscription: tenant.Subscription{Package: tenant.PackageTrial, TrialEndsAt: &trialEnds},
		Facilities:   []string{"wifi", "pool", "parking"},
	}
	if err := tenants.Create(ctx, hotel); err != nil {
		log.Fatal().Err(err).Msg("create demo hotel failed")
	}
	if err := a.SitePages.SeedSystemPages(ctx, hotel.ID); err != nil {
		log.Fatal().Err(err).Msg("seed system pages failed")
	}

	price := 2500.0
	roomType := "Deluxe"
	title := localized.Text{"tr": "Deniz Manzaralı Oda", "en": "Sea View Room"}
	if _, err := a.Rooms.Create(ctx, hotel.ID, room.Payload{Title: &title, Type: &roomType, Price: &price}, room.Files{}); err != nil {
		log.Fatal().Err(err).Msg("create demo room failed")
	}

	th, err := a.Themes.Create(ctx, hotel.ID, "Varsayılan")
	if err != nil {
		log.Fatal().Err(err).Msg("create demo theme failed")
	}
	if _, err := a.Themes.Activate(ctx, hotel.ID, th.ID); err != nil {
		log.Fatal().Err(err).Msg("activate demo theme failed")
	}

	log.Info().
		Str("hotel_id", hotel.ID).
		Str("email", demoEmail).
		Msg("demo hotel seeded, password is " + demoPassword)
}
