package tenant

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"theroom/internal/mail"
	"theroom/internal/pkg/apperr"
	"theroom/internal/pkg/jwt"
	"theroom/internal/pkg/localized"
	"theroom/internal/pkg/validator"
)

// Pages is the website page directory a tenant's settings point into.
type Pages interface {
	SeedSystemPages(ctx context.Context, hotelID string) error
	OwnsPage(ctx context.Context, hotelID, pageID string) (bool, error)
}

type Settings struct {
	ClientURL      string
	VerifyTokenTTL time.Duration
	ResetTokenTTL  time.Duration
	TrialPeriod    time.Duration
}

type Service struct {
	repo     Repository
	jwt      *jwt.Service
	mailer   mail.Sender
	langs    *localized.Languages
	pages    Pages
	settings Settings
	now      func() time.Time
}

func NewService(repo Repository, jwtService *jwt.Service, mailer mail.Sender, langs *localized.Languages, pages Pages, settings Settings) *Service {
	return &Service{
		repo:     repo,
		jwt:      jwtService,
		mailer:   mailer,
		langs:    langs,
		pages:    pages,
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type RegisterInput struct {
	Name         string
	AdminEmail   string
	Password     string
	CustomDomain string
}

type RegisterResult struct {
	Tenant           *Tenant
	VerificationSent bool
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.AdminEmail)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if !validator.Var(email, "required,email") {
		return nil, apperr.Validation("a valid adminEmail is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperr.Validation("password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrTenantNotFound) {
		return nil, err
	}

	var domain *string
	if d := normalizeDomain(in.CustomDomain); d != "" {
		if _, err := s.repo.GetByCustomDomain(ctx, d); err == nil {
			return nil, ErrDomainTaken
		} else if !errors.Is(err, ErrTenantNotFound) {
			return nil, err
		}
		domain = &d
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	token, err := s.jwt.GeneratePurposeToken(jwt.PurposeVerify, email, s.settings.VerifyTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign verification token: %w", err)
	}

	trialEnds := s.now().Add(s.settings.TrialPeriod)
	t := &Tenant{
		Name:              name,
		AdminEmail:        email,
		PasswordHash:      hash,
		VerificationToken: &token,
		CustomDomain:      domain,
		Subscription:      Subscription{Package: PackageTrial, TrialEndsAt: &trialEnds},
		Details:           map[string]any{},
		Facilities:        []string{},
		SiteSettings:      SiteSettings{PageMappings: map[string]*string{}},
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	if s.pages != nil {
		if err := s.pages.SeedSystemPages(ctx, t.ID); err != nil {
			log.Warn().Err(err).Str("hotel_id", t.ID).Msg("failed to seed system pages")
		}
	}

	sent := true
	if err := s.sendVerification(ctx, t, token); err != nil {
		log.Warn().Err(err).Str("hotel_id", t.ID).Msg("verification email not sent")
		sent = false
	}
	return &RegisterResult{Tenant: t, VerificationSent: sent}, nil
}

type VerifyResult struct {
	AlreadyVerified bool
}

func (s *Service) Verify(ctx context.Context, token string) (*VerifyResult, error) {
	email, err := s.jwt.ValidatePurposeToken(token, jwt.PurposeVerify)
	if err != nil {
		return nil, ErrInvalidToken
	}
	t, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrTenantNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if t.IsVerified {
		return &VerifyResult{AlreadyVerified: true}, nil
	}
	if t.VerificationToken == nil || *t.VerificationToken != token {
		return nil, ErrInvalidToken
	}

	ok, err := s.repo.MarkVerified(ctx, t.ID, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost a race with another delivery of the same link
		current, err := s.repo.GetByID(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		if current.IsVerified {
			return &VerifyResult{AlreadyVerified: true}, nil
		}
		return nil, ErrInvalidToken
	}
	log.Info().Str("hotel_id", t.ID).Msg("hotel email verified")
	return &VerifyResult{}, nil
}

// ResendVerification replaces the stored token with a new one and mails it.
// Unknown or already verified emails succeed silently.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	t, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrTenantNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if t.IsVerified {
		return nil
	}

	token, err := s.jwt.GeneratePurposeToken(jwt.PurposeVerify, t.AdminEmail, s.settings.VerifyTokenTTL)
	if err != nil {
		return fmt.Errorf("sign verification token: %w", err)
	}
	if err := s.repo.SetVerificationToken(ctx, t.ID, token); err != nil {
		return err
	}
	if err := s.sendVerification(ctx, t, token); err != nil {
		return fmt.Errorf("%w: %w", ErrMailFailed, err)
	}
	return nil
}

type LoginResult struct {
	Token  string
	Tenant *Tenant
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	t, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if !t.IsVerified {
		return nil, ErrNotVerified
	}
	if err := CheckPassword(password, t.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(t.ID, t.TenantID, t.AdminEmail)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &LoginResult{Token: token, Tenant: t}, nil
}

// RequestPasswordReset stores a reset token before mailing it; a later request replaces it.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	t, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	token, err := s.jwt.GeneratePurposeToken(jwt.PurposeReset, t.ID, s.settings.ResetTokenTTL)
	if err != nil {
		return fmt.Errorf("sign reset token: %w", err)
	}
	if err := s.repo.SetResetToken(ctx, t.ID, token, s.now().Add(s.settings.ResetTokenTTL)); err != nil {
		return err
	}

	msg, err := mail.PasswordResetMessage(t.AdminEmail, s.link("/reset-password", token))
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrMailFailed, err)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperr.Validation("password must be at least %d characters", minPasswordLength)
	}
	id, err := s.jwt.ValidatePurposeToken(token, jwt.PurposeReset)
	if err != nil {
		return ErrInvalidToken
	}

	now := s.now()
	t, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrTenantNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}
	if t.ResetPasswordToken == nil || *t.ResetPasswordToken != token ||
		t.ResetPasswordExpires == nil || !t.ResetPasswordExpires.After(now) {
		return ErrInvalidToken
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	ok, err := s.repo.ResetPassword(ctx, t.ID, token, hash, now)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidToken
	}
	log.Info().Str("hotel_id", t.ID).Msg("password reset")
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

// ProfilePatch lists the profile fields a tenant may change.
// Nil fields are left alone. Details merge per key (a null value removes the key);
// Facilities replace the stored list; an empty CustomDomain clears it.
type ProfilePatch struct {
	Name         *string
	CustomDomain *string
	Details      map[string]any
	Facilities   *[]string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*Tenant, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperr.Validation("name must not be empty")
	}

	var domain *string
	if patch.CustomDomain != nil {
		if d := normalizeDomain(*patch.CustomDomain); d != "" {
			other, err := s.repo.GetByCustomDomain(ctx, d)
			if err == nil && other.ID != id {
				return nil, ErrDomainTaken
			}
			if err != nil && !errors.Is(err, ErrTenantNotFound) {
				return nil, err
			}
			domain = &d
		}
	}

	return s.repo.UpdateLocked(ctx, id, func(t *Tenant) error {
		if patch.Name != nil {
			t.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.CustomDomain != nil {
			t.CustomDomain = domain
		}
		if patch.Details != nil {
			merged := make(map[string]any, len(t.Details)+len(patch.Details))
			for k, v := range t.Details {
				merged[k] = v
			}
			for k, v := range patch.Details {
				if v == nil {
					delete(merged, k)
					continue
				}
				merged[k] = v
			}
			t.Details = merged
		}
		if patch.Facilities != nil {
			t.Facilities = append([]string{}, (*patch.Facilities)...)
		}
		return nil
	})
}

// SiteSettingsPatch replaces each supplied top-level field. PageMappings merge per
// slot; a nil or empty value stores the slot as unset.
type SiteSettingsPatch struct {
	SiteTitle    *localized.Text    `json:"siteTitle"`
	Description  *localized.Text    `json:"description"`
	Keywords     *localized.Text    `json:"keywords"`
	Logo         *string            `json:"logo"`
	Favicon      *string            `json:"favicon"`
	PageMappings map[string]*string `json:"pageMappings"`
}

func (s *Service) UpdateSiteSettings(ctx context.Context, id string, patch SiteSettingsPatch) (*Tenant, error) {
	for field, text := range map[string]*localized.Text{
		"siteTitle":   patch.SiteTitle,
		"description": patch.Description,
		"keywords":    patch.Keywords,
	} {
		if text != nil {
			if err := s.langs.Validate(field, *text); err != nil {
				return nil, err
			}
		}
	}

	mappings := make(map[string]*string, len(patch.PageMappings))
	for slot, pageID := range patch.PageMappings {
		if !pageSlots[slot] {
			return nil, apperr.Validation("pageMappings: unknown slot %q", slot)
		}
		if pageID == nil || strings.TrimSpace(*pageID) == "" {
			mappings[slot] = nil
			continue
		}
		v := strings.TrimSpace(*pageID)
		if s.pages != nil {
			owned, err := s.pages.OwnsPage(ctx, id, v)
			if err != nil {
				return nil, err
			}
			if !owned {
				return nil, apperr.Validation("pageMappings.%s: page not found", slot)
			}
		}
		mappings[slot] = &v
	}

	return s.repo.UpdateLocked(ctx, id, func(t *Tenant) error {
		ss := t.SiteSettings
		if patch.SiteTitle != nil {
			ss.SiteTitle = patch.SiteTitle.Clone()
		}
		if patch.Description != nil {
			ss.Description = patch.Description.Clone()
		}
		if patch.Keywords != nil {
			ss.Keywords = patch.Keywords.Clone()
		}
		if patch.Logo != nil {
			ss.Logo = strings.TrimSpace(*patch.Logo)
		}
		if patch.Favicon != nil {
			ss.Favicon = strings.TrimSpace(*patch.Favicon)
		}
		merged := make(map[string]*string, len(ss.PageMappings)+len(mappings))
		for k, v := range ss.PageMappings {
			merged[k] = v
		}
		for k, v := range mappings {
			merged[k] = v
		}
		ss.PageMappings = merged
		t.SiteSettings = ss
		return nil
	})
}

func (s *Service) sendVerification(ctx context.Context, t *Tenant, token string) error {
	msg, err := mail.VerificationMessage(t.AdminEmail, t.Name, s.link("/verify", token))
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, msg)
}

func (s *Service) link(path, token string) string {
	return strings.TrimRight(s.settings.ClientURL, "/") + path + "?token=" + url.QueryEscape(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeDomain(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	return strings.TrimRight(d, "/")
}
