package room

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"theroom/internal/pkg/formfield"
	"theroom/internal/pkg/localized"
)

const (
	DefaultType     = "Standart"
	DefaultCapacity = 2
)

type Features struct {
	TV          bool   `json:"tv"`
	TVType      string `json:"tvType"`
	AC          bool   `json:"ac"`
	Minibar     bool   `json:"minibar"`
	Safe        bool   `json:"safe"`
	Phone       bool   `json:"phone"`
	Wifi        bool   `json:"wifi"`
	RoomService bool   `json:"roomService"`
}

type Bathroom struct {
	Type         string `json:"type"`
	IsPrivate    bool   `json:"isPrivate"`
	HairDryer    bool   `json:"hairDryer"`
	Toiletries   bool   `json:"toiletries"`
	CleaningFreq string `json:"cleaningFreq"`
}

type Safety struct {
	FireAlarm     bool `json:"fireAlarm"`
	SmokeDetector bool `json:"smokeDetector"`
}

func DefaultFeatures() Features { return Features{Wifi: true} }

func DefaultBathroom() Bathroom {
	return Bathroom{Type: "Duş", HairDryer: true, Toiletries: true}
}

// Room is one sellable room type of a hotel. Nested objects keep the client's raw
// text when it could not be decoded.
type Room struct {
	ID      string `json:"id" gorm:"type:varchar(36);primaryKey"`
	HotelID string `json:"hotelId" gorm:"type:varchar(36);not null;index"`

	Title              localized.Text `json:"title"`
	Description        localized.Text `json:"description"`
	View               localized.Text `json:"view"`
	CancellationPolicy localized.Text `json:"cancellationPolicy"`
	MinibarContents    localized.Text `json:"minibarContents"`

	Type         string   `json:"type" gorm:"not null;default:Standart"`
	Price        float64  `json:"price" gorm:"not null"`
	Size         *float64 `json:"size"`
	Capacity     int      `json:"capacity" gorm:"not null;default:2"`
	BedType      string   `json:"bedType"`
	BedCount     *int     `json:"bedCount"`
	Floor        string   `json:"floor"`
	IsAccessible bool     `json:"isAccessible" gorm:"not null;default:false"`

	Features formfield.Field[Features] `json:"features" gorm:"type:text;serializer:json"`
	Bathroom formfield.Field[Bathroom] `json:"bathroom" gorm:"type:text;serializer:json"`
	Safety   formfield.Field[Safety]   `json:"safety" gorm:"type:text;serializer:json"`

	Balcony        bool   `json:"balcony" gorm:"not null;default:false"`
	CheckInTime    string `json:"checkInTime"`
	CheckOutTime   string `json:"checkOutTime"`
	SmokingAllowed bool   `json:"smokingAllowed" gorm:"not null;default:false"`
	PetFriendly    bool   `json:"petFriendly" gorm:"not null;default:false"`

	Images datatypes.JSONSlice[string] `json:"images"`
	Videos datatypes.JSONSlice[string] `json:"videos"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Room) TableName() string { return "rooms" }

func (r *Room) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func newRoom(hotelID string) *Room {
	return &Room{
		ID:       uuid.NewString(),
		HotelID:  hotelID,
		Type:     DefaultType,
		Capacity: DefaultCapacity,
		Features: formfield.Of(DefaultFeatures()),
		Bathroom: formfield.Of(DefaultBathroom()),
		Safety:   formfield.Of(Safety{}),
		Images:   []string{},
		Videos:   []string{},
	}
}
