package sitepage

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	HomeName = "Ana Sayfa"
	HomeSlug = "/"
)

// Component is one block of a page. Data is kept exactly as the editor sent it.
type Component struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// WebsitePage is a site-builder page: an ordered list of components under a slug.
type WebsitePage struct {
	ID           string                         `json:"id" gorm:"type:varchar(36);primaryKey"`
	HotelID      string                         `json:"hotelId" gorm:"type:varchar(36);not null;uniqueIndex:idx_website_pages_hotel_slug"`
	Name         string                         `json:"name" gorm:"not null"`
	Slug         string                         `json:"slug" gorm:"not null;uniqueIndex:idx_website_pages_hotel_slug"`
	Components   datatypes.JSONSlice[Component] `json:"components"`
	IsSystemPage bool                           `json:"isSystemPage" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (WebsitePage) TableName() string { return "website_pages" }

func (p *WebsitePage) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Components == nil {
		p.Components = []Component{}
	}
	return nil
}

// NormalizeSlug trims s and makes it start with "/". Blank input stays blank.
func NormalizeSlug(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	return s
}
