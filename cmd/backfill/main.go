package main

import (
	"context"
	"os"

	"motofix/internal/config"
	"motofix/internal/database"
	"motofix/internal/repository"

	"github.com/rs/zerolog"
)

// Backfills chat rooms for bookings that were confirmed before room
// provisioning existed (or whose provisioning failed). EnsureRoom is
// idempotent, so rerunning this is always safe.
func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect")
	}

	ctx := context.Background()
	chatRepo := repository.NewChatRepository(db)

	bookings, err := chatRepo.ConfirmedBookingsWithoutRoom(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list bookings without rooms")
	}

	created := 0
	for _, b := range bookings {
		if b.MechanicID == nil {
			log.Warn().Int64("booking_id", b.ID).Msg("confirmed booking has no mechanic, skipping")
			continue
		}
		if _, err := chatRepo.EnsureRoom(ctx, b.ID, b.CustomerID, b.MechanicID); err != nil {
			log.Error().Err(err).Int64("booking_id", b.ID).Msg("ensure room")
			continue
		}
		created++
	}

	log.Info().
		Int("candidates", len(bookings)).
		Int("created", created).
		Msg("chat room backfill complete")
}
