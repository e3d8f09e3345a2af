package subscription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"theroom/internal/mail"
	"theroom/internal/observability"
)

type ReminderResult struct {
	Due     int `json:"due"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Reminder mails tenants whose trial ends DaysBefore days from the run date.
type Reminder struct {
	tenants    TenantReader
	mailer     mail.Sender
	ledger     Ledger
	daysBefore int
	link       string
}

func NewReminder(tenants TenantReader, mailer mail.Sender, ledger Ledger, daysBefore int, clientURL string) *Reminder {
	return &Reminder{
		tenants:    tenants,
		mailer:     mailer,
		ledger:     ledger,
		daysBefore: daysBefore,
		link:       strings.TrimRight(clientURL, "/") + "/subscription",
	}
}

// Window is the local calendar day DaysBefore days after now.
func (r *Reminder) Window(now time.Time) (time.Time, time.Time) {
	day := now.AddDate(0, 0, r.daysBefore)
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, 1)
}

func (r *Reminder) Run(ctx context.Context, now time.Time) (ReminderResult, error) {
	var res ReminderResult
	from, to := r.Window(now)
	due, err := r.tenants.ListTrialsEndingBetween(ctx, from.UTC(), to.UTC())
	if err != nil {
		return res, fmt.Errorf("list ending trials: %w", err)
	}
	res.Due = len(due)
	date := now.Format(time.DateOnly)

	for _, t := range due {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		logger := log.With().Str("hotel_id", t.ID).Str("email", t.AdminEmail).Logger()
		key := t.ID + ":" + date

		claimed, err := r.ledger.Claim(ctx, key)
		if err != nil {
			res.Failed++
			observability.ObserveReminder("failed")
			logger.Error().Err(err).Msg("reminder ledger unavailable")
			continue
		}
		if !claimed {
			res.Skipped++
			observability.ObserveReminder("skipped")
			continue
		}

		if err := r.send(ctx, t.AdminEmail, t.Name, *t.Subscription.TrialEndsAt); err != nil {
			res.Failed++
			observability.ObserveReminder("failed")
			logger.Error().Err(err).Msg("trial reminder failed")
			if err := r.ledger.Release(ctx, key); err != nil {
				logger.Warn().Err(err).Msg("reminder ledger release failed")
			}
			continue
		}
		res.Sent++
		observability.ObserveReminder("sent")
		logger.Info().Msg("trial reminder sent")
	}
	return res, nil
}

func (r *Reminder) send(ctx context.Context, to, name string, endsAt time.Time) error {
	msg, err := mail.TrialReminderMessage(to, name, endsAt, r.link)
	if err != nil {
		return err
	}
	return r.mailer.Send(ctx, msg)
}
