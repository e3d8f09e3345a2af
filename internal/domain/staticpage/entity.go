package staticpage

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"theroom/internal/pkg/localized"
)

const (
	TypeKVKK    = "kvkk"
	TypePrivacy = "privacy"
	TypeCookie  = "cookie"
	TypeTerms   = "terms"
	TypeContact = "contact"
)

var types = []string{TypeKVKK, TypePrivacy, TypeCookie, TypeTerms, TypeContact}

// Types lists the page types a hotel can publish, in display order.
func Types() []string { return slices.Clone(types) }

func validType(t string) bool { return slices.Contains(types, t) }

// Page is a legal or contact page. A hotel has at most one page per type.
type Page struct {
	ID       string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	HotelID  string         `json:"hotelId" gorm:"type:varchar(36);not null;uniqueIndex:idx_pages_hotel_type"`
	Type     string         `json:"type" gorm:"size:16;not null;uniqueIndex:idx_pages_hotel_type"`
	Title    localized.Text `json:"title"`
	Content  localized.Text `json:"content"`
	ImageURL string         `json:"imageUrl" gorm:"not null;default:''"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Page) TableName() string { return "pages" }

func (p *Page) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// View is what the editor reads. Pages that were never saved have no UpdatedAt.
type View struct {
	Type      string         `json:"type"`
	Title     localized.Text `json:"title"`
	Content   localized.Text `json:"content"`
	ImageURL  string         `json:"imageUrl"`
	UpdatedAt *time.Time     `json:"updatedAt,omitempty"`
}

func (p *Page) View() View {
	updated := p.UpdatedAt
	return View{
		Type:      p.Type,
		Title:     p.Title.Clone(),
		Content:   p.Content.Clone(),
		ImageURL:  p.ImageURL,
		UpdatedAt: &updated,
	}
}

func emptyView(pageType string) View {
	return View{Type: pageType, Title: localized.Text{}, Content: localized.Text{}}
}
