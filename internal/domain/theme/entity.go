package theme

import (
	"maps"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultConfig is the configuration a new theme starts with.
func DefaultConfig() datatypes.JSONMap {
	return datatypes.JSONMap{
		"primaryColor":    "#007bff",
		"backgroundColor": "#ffffff",
	}
}

// Theme is a named look for the public site. At most one theme per hotel is active;
// the partial unique index enforces it in storage.
type Theme struct {
	ID       string            `json:"id" gorm:"type:varchar(36);primaryKey"`
	HotelID  string            `json:"hotelId" gorm:"type:varchar(36);not null;index;uniqueIndex:idx_themes_one_active,where:is_active = true"`
	Name     string            `json:"name" gorm:"not null"`
	IsActive bool              `json:"isActive" gorm:"not null;default:false"`
	Config   datatypes.JSONMap `json:"config"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Theme) TableName() string { return "themes" }

func (t *Theme) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Config == nil {
		t.Config = DefaultConfig()
	}
	return nil
}

func cloneConfig(c map[string]any) datatypes.JSONMap {
	if c == nil {
		return datatypes.JSONMap{}
	}
	return datatypes.JSONMap(maps.Clone(c))
}
