package tenant

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"theroom/internal/pkg/localized"
)

const (
	PackageTrial    = "TRIAL"
	PackageMonthly  = "MONTHLY"
	PackageAnnual   = "ANNUAL"
	PackageInactive = "INACTIVE"
)

// Page mapping slots a tenant can point at one of its website pages.
const (
	SlotHome    = "homePage"
	SlotContact = "contactPage"
	SlotRooms   = "roomsPage"
	SlotAbout   = "aboutPage"
)

var pageSlots = map[string]bool{SlotHome: true, SlotContact: true, SlotRooms: true, SlotAbout: true}

// Tenant is one hotel account. ID is the storage key every tenant-scoped row
// references as hotel_id; TenantID is the public identifier and never changes.
type Tenant struct {
	ID                   string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	TenantID             string     `json:"tenantId" gorm:"type:varchar(36);uniqueIndex;not null"`
	Name                 string     `json:"name" gorm:"not null"`
	AdminEmail           string     `json:"adminEmail" gorm:"uniqueIndex;not null"`
	PasswordHash         string     `json:"-" gorm:"not null"`
	IsVerified           bool       `json:"isVerified" gorm:"not null;default:false"`
	VerificationToken    *string    `json:"-"`
	ResetPasswordToken   *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
	CustomDomain         *string    `json:"customDomain" gorm:"uniqueIndex"`

	Subscription Subscription `json:"subscription" gorm:"embedded;embeddedPrefix:subscription_"`

	Details      datatypes.JSONMap           `json:"details"`
	Facilities   datatypes.JSONSlice[string] `json:"facilities"`
	SiteSettings SiteSettings                `json:"siteSettings" gorm:"serializer:json"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tenant) TableName() string { return "hotels" }

func (t *Tenant) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.TenantID == "" {
		t.TenantID = uuid.NewString()
	}
	return nil
}

type Subscription struct {
	Package     string     `json:"package" gorm:"column:package;size:16;not null;default:TRIAL;index"`
	TrialEndsAt *time.Time `json:"trialEndsAt,omitempty" gorm:"column:trial_ends_at;index"`
	RenewalDate *time.Time `json:"renewalDate,omitempty" gorm:"column:renewal_date"`
	ExternalID  string     `json:"subscriptionId,omitempty" gorm:"column:external_id"`
}

// SiteSettings drive the public site's head tags and page routing.
type SiteSettings struct {
	SiteTitle    localized.Text     `json:"siteTitle"`
	Description  localized.Text     `json:"description"`
	Keywords     localized.Text     `json:"keywords"`
	Logo         string             `json:"logo"`
	Favicon      string             `json:"favicon"`
	PageMappings map[string]*string `json:"pageMappings"`
}

// View is the tenant projection returned to the dashboard.
type View struct {
	ID           string         `json:"id"`
	TenantID     string         `json:"tenantId"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	IsVerified   bool           `json:"isVerified"`
	CustomDomain *string        `json:"customDomain"`
	Subscription Subscription   `json:"subscription"`
	SiteSettings SiteSettings   `json:"siteSettings"`
	Details      map[string]any `json:"details"`
	Facilities   []string       `json:"facilities"`
	CreatedAt    time.Time      `json:"createdAt"`
}

func (t *Tenant) View() View {
	details := map[string]any(t.Details)
	if details == nil {
		details = map[string]any{}
	}
	facilities := []string(t.Facilities)
	if facilities == nil {
		facilities = []string{}
	}
	settings := t.SiteSettings
	if settings.PageMappings == nil {
		settings.PageMappings = map[string]*string{}
	}
	return View{
		ID:           t.ID,
		TenantID:     t.TenantID,
		Name:         t.Name,
		Email:        t.AdminEmail,
		IsVerified:   t.IsVerified,
		CustomDomain: t.CustomDomain,
		Subscription: t.Subscription,
		SiteSettings: settings,
		Details:      details,
		Facilities:   facilities,
		CreatedAt:    t.CreatedAt,
	}
}
