package room

import (
	"math"
	"strconv"
	"strings"

	"theroom/internal/pkg/apperr"
	"theroom/internal/pkg/formfield"
	"theroom/internal/pkg/localized"
)

// Payload is a partial room. Nil fields were not sent.
type Payload struct {
	Title              *localized.Text
	Description        *localized.Text
	View               *localized.Text
	CancellationPolicy *localized.Text
	MinibarContents    *localized.Text

	Type         *string
	Price        *float64
	Size         *float64
	Capacity     *int
	BedType      *string
	BedCount     *int
	Floor        *string
	IsAccessible *bool

	Features *formfield.Field[Features]
	Bathroom *formfield.Field[Bathroom]
	Safety   *formfield.Field[Safety]

	Balcony        *bool
	CheckInTime    *string
	CheckOutTime   *string
	SmokingAllowed *bool
	PetFriendly    *bool
}

// ParseForm reads a room from multipart or urlencoded fields. Localized and nested
// fields arrive as JSON text and fall back to their raw value when malformed;
// scalars must parse.
func ParseForm(form formfield.Form, defaultLang string) (Payload, error) {
	var p Payload

	for key, dst := range map[string]**localized.Text{
		"title":              &p.Title,
		"description":        &p.Description,
		"view":               &p.View,
		"cancellationPolicy": &p.CancellationPolicy,
		"minibarContents":    &p.MinibarContents,
	} {
		if raw, ok := form.GetPostForm(key); ok {
			t := localized.Parse(raw, defaultLang)
			*dst = &t
		}
	}

	for key, dst := range map[string]**string{
		"type":         &p.Type,
		"bedType":      &p.BedType,
		"floor":        &p.Floor,
		"checkInTime":  &p.CheckInTime,
		"checkOutTime": &p.CheckOutTime,
	} {
		if raw, ok := form.GetPostForm(key); ok {
			v := strings.TrimSpace(raw)
			*dst = &v
		}
	}

	for key, dst := range map[string]**float64{"price": &p.Price, "size": &p.Size} {
		raw, ok := form.GetPostForm(key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			if key == "price" {
				return Payload{}, ErrInvalidPrice
			}
			return Payload{}, apperr.Validation("%s must be a number", key)
		}
		*dst = &v
	}

	for key, dst := range map[string]**int{"capacity": &p.Capacity, "bedCount": &p.BedCount} {
		raw, ok := form.GetPostForm(key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Payload{}, apperr.Validation("%s must be an integer", key)
		}
		*dst = &v
	}

	for key, dst := range map[string]**bool{
		"isAccessible":   &p.IsAccessible,
		"balcony":        &p.Balcony,
		"smokingAllowed": &p.SmokingAllowed,
		"petFriendly":    &p.PetFriendly,
	} {
		raw, ok := form.GetPostForm(key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := parseBool(raw)
		if err != nil {
			return Payload{}, apperr.Validation("%s must be true or false", key)
		}
		*dst = &v
	}

	if f, ok := formfield.LookupWith(form, "features", DefaultFeatures()); ok {
		p.Features = &f
	}
	if f, ok := formfield.LookupWith(form, "bathroom", DefaultBathroom()); ok {
		p.Bathroom = &f
	}
	if f, ok := formfield.LookupWith(form, "safety", Safety{}); ok {
		p.Safety = &f
	}
	return p, nil
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(raw))
}

func (p Payload) validate(langs *localized.Languages) error {
	if p.Price != nil && *p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.Capacity != nil && *p.Capacity < 1 {
		return apperr.Validation("capacity must be at least 1")
	}
	if p.Size != nil && *p.Size < 0 {
		return apperr.Validation("size must not be negative")
	}
	if p.BedCount != nil && *p.BedCount < 0 {
		return apperr.Validation("bedCount must not be negative")
	}
	if langs == nil {
		return nil
	}
	for field, text := range map[string]*localized.Text{
		"title":              p.Title,
		"description":        p.Description,
		"view":               p.View,
		"cancellationPolicy": p.CancellationPolicy,
		"minibarContents":    p.MinibarContents,
	} {
		if text != nil {
			if err := langs.Validate(field, *text); err != nil {
				return err
			}
		}
	}
	return nil
}

// apply copies the supplied fields onto r. Nested objects replace the stored ones.
func (p Payload) apply(r *Room) {
	setText := func(dst *localized.Text, src *localized.Text) {
		if src != nil {
			*dst = src.Clone()
		}
	}
	setText(&r.Title, p.Title)
	setText(&r.Description, p.Description)
	setText(&r.View, p.View)
	setText(&r.CancellationPolicy, p.CancellationPolicy)
	setText(&r.MinibarContents, p.MinibarContents)

	if p.Type != nil {
		r.Type = *p.Type
		if r.Type == "" {
			r.Type = DefaultType
		}
	}
	if p.Price != nil {
		r.Price = *p.Price
	}
	if p.Size != nil {
		r.Size = p.Size
	}
	if p.Capacity != nil {
		r.Capacity = *p.Capacity
	}
	if p.BedType != nil {
		r.BedType = *p.BedType
	}
	if p.BedCount != nil {
		r.BedCount = p.BedCount
	}
	if p.Floor != nil {
		r.Floor = *p.Floor
	}
	if p.IsAccessible != nil {
		r.IsAccessible = *p.IsAccessible
	}
	if p.Features != nil {
		r.Features = *p.Features
	}
	if p.Bathroom != nil {
		r.Bathroom = *p.Bathroom
	}
	if p.Safety != nil {
		r.Safety = *p.Safety
	}
	if p.Balcony != nil {
		r.Balcony = *p.Balcony
	}
	if p.CheckInTime != nil {
		r.CheckInTime = *p.CheckInTime
	}
	if p.CheckOutTime != nil {
		r.CheckOutTime = *p.CheckOutTime
	}
	if p.SmokingAllowed != nil {
		r.SmokingAllowed = *p.SmokingAllowed
	}
	if p.PetFriendly != nil {
		r.PetFriendly = *p.PetFriendly
	}
}
