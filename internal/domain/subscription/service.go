package subscription

import (
	"context"
	"math"
	"time"

	"theroom/internal/domain/tenant"
)

// TenantReader is the slice of the tenant directory this package reads.
type TenantReader interface {
	GetByID(ctx context.Context, id string) (*tenant.Tenant, error)
	ListTrialsEndingBetween(ctx context.Context, from, to time.Time) ([]tenant.Tenant, error)
}

type Status struct {
	Package       string     `json:"package"`
	TrialEndsAt   *time.Time `json:"trialEndsAt"`
	RenewalDate   *time.Time `json:"renewalDate"`
	DaysRemaining *int       `json:"daysRemaining"`
	Active        bool       `json:"active"`
}

type Price struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Period   string `json:"period"`
}

type Service struct {
	tenants TenantReader
	now     func() time.Time
}

func NewService(tenants TenantReader) *Service {
	return &Service{tenants: tenants, now: time.Now}
}

func (s *Service) Status(ctx context.Context, hotelID string) (*Status, error) {
	t, err := s.tenants.GetByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	return statusAt(t.Subscription, s.now()), nil
}

// Pricing is the single published plan.
func (s *Service) Pricing() Price {
	return Price{Amount: 1000, Currency: "TRY", Period: "yearly"}
}

func statusAt(sub tenant.Subscription, now time.Time) *Status {
	st := &Status{
		Package:     sub.Package,
		TrialEndsAt: sub.TrialEndsAt,
		RenewalDate: sub.RenewalDate,
	}

	var end *time.Time
	switch sub.Package {
	case tenant.PackageTrial:
		end = sub.TrialEndsAt
		st.Active = end != nil && now.Before(*end)
	case tenant.PackageMonthly, tenant.PackageAnnual:
		end = sub.RenewalDate
		st.Active = end == nil || now.Before(*end)
	}
	if end != nil {
		days := daysUntil(now, *end)
		st.DaysRemaining = &days
	}
	return st
}

// daysUntil counts started days left, never below zero.
func daysUntil(now, end time.Time) int {
	left := end.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}
