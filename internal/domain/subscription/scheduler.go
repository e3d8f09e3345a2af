package subscription

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Scheduler runs the reminder once a day at Hour:00 local time.
type Scheduler struct {
	reminder *Reminder
	hour     int
	now      func() time.Time
}

func NewScheduler(reminder *Reminder, hour int) *Scheduler {
	return &Scheduler{reminder: reminder, hour: hour, now: time.Now}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		next := nextRun(s.now(), s.hour)
		log.Info().Time("next_run", next).Msg("trial reminder scheduled")

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}

		res, err := s.reminder.Run(ctx, s.now())
		if err != nil {
			log.Error().Err(err).Msg("trial reminder run failed")
			continue
		}
		log.Info().
			Int("due", res.Due).
			Int("sent", res.Sent).
			Int("skipped", res.Skipped).
			Int("failed", res.Failed).
			Msg("trial reminder run finished")
	}
}

// nextRun is the first hour:00 strictly after now.
func nextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
