package tenant

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"theroom/internal/database"
)

type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	GetByEmail(ctx context.Context, email string) (*Tenant, error)
	GetByCustomDomain(ctx context.Context, domain string) (*Tenant, error)
	SetVerificationToken(ctx context.Context, id, token string) error
	MarkVerified(ctx context.Context, id, token string) (bool, error)
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	ResetPassword(ctx context.Context, id, token, passwordHash string, now time.Time) (bool, error)
	UpdateLocked(ctx context.Context, id string, fn func(t *Tenant) error) (*Tenant, error)
	ListTrialsEndingBetween(ctx context.Context, from, to time.Time) ([]Tenant, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Tenant) error {
	err := r.db.WithContext(ctx).Create(t).Error
	if database.IsUniqueViolation(err) {
		return r.takenBy(ctx, t)
	}
	return err
}

// takenBy reports which unique field of t another tenant already holds.
// Email wins when both are taken.
func (r *repository) takenBy(ctx context.Context, t *Tenant) error {
	if t.CustomDomain == nil {
		return ErrEmailTaken
	}
	if _, err := r.GetByEmail(ctx, t.AdminEmail); !errors.Is(err, ErrTenantNotFound) {
		return ErrEmailTaken
	}
	if _, err := r.GetByCustomDomain(ctx, *t.CustomDomain); err == nil {
		return ErrDomainTaken
	}
	return ErrEmailTaken
}

func (r *repository) GetByID(ctx context.Context, id string) (*Tenant, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Tenant, error) {
	return r.first(ctx, "admin_email = ?", email)
}

func (r *repository) GetByCustomDomain(ctx context.Context, domain string) (*Tenant, error) {
	return r.first(ctx, "custom_domain = ?", domain)
}

func (r *repository) first(ctx context.Context, query string, arg any) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).Where(query, arg).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) SetVerificationToken(ctx context.Context, id, token string) error {
	return r.db.WithContext(ctx).Model(&Tenant{}).
		Where("id = ? AND is_verified = ?", id, false).
		Update("verification_token", token).Error
}

// MarkVerified flips the flag only while the stored token still matches, so
// concurrent deliveries of one link perform a single write.
func (r *repository) MarkVerified(ctx context.Context, id, token string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Tenant{}).
		Where("id = ? AND is_verified = ? AND verification_token = ?", id, false, token).
		Updates(map[string]any{"is_verified": true, "verification_token": nil})
	return res.RowsAffected == 1, res.Error
}

func (r *repository) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	return r.db.WithContext(ctx).Model(&Tenant{}).Where("id = ?", id).
		Updates(map[string]any{"reset_password_token": token, "reset_password_expires": expires}).Error
}

func (r *repository) ResetPassword(ctx context.Context, id, token, passwordHash string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Tenant{}).
		Where("id = ? AND reset_password_token = ? AND reset_password_expires > ?", id, token, now).
		Updates(map[string]any{
			"password_hash":          passwordHash,
			"reset_password_token":   nil,
			"reset_password_expires": nil,
		})
	return res.RowsAffected == 1, res.Error
}

// UpdateLocked loads the tenant under a row lock, applies fn and saves the result.
func (r *repository) UpdateLocked(ctx context.Context, id string, fn func(t *Tenant) error) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTenantNotFound
			}
			return err
		}
		if err := fn(&t); err != nil {
			return err
		}
		if err := tx.Save(&t).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return ErrDomainTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) ListTrialsEndingBetween(ctx context.Context, from, to time.Time) ([]Tenant, error) {
	var tenants []Tenant
	err := r.db.WithContext(ctx).
		Where("subscription_package = ? AND subscription_trial_ends_at >= ? AND subscription_trial_ends_at < ?", PackageTrial, from, to).
		Order("subscription_trial_ends_at ASC").
		Find(&tenants).Error
	return tenants, err
}
