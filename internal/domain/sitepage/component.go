package sitepage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"theroom/internal/pkg/apperr"
	"theroom/internal/pkg/localized"
	"theroom/internal/pkg/validator"
)

const (
	TypeSlider   = "slider"
	TypeText     = "text"
	TypeFeatures = "features"
	TypeRooms    = "rooms"
)

type SliderData struct {
	Images []string `json:"images" validate:"max=20,dive,required"`
	Height string   `json:"height" validate:"max=16"`
}

type TextData struct {
	Content localized.Text `json:"content"`
	Align   string         `json:"align" validate:"omitempty,oneof=left center right"`
}

type FeaturesData struct {
	Title localized.Text `json:"title"`
	Items []string       `json:"items" validate:"max=50,dive,required"`
}

type RoomsData struct {
	Limit int `json:"limit" validate:"gte=0,lte=50"`
}

// Definition describes a component type for the editor palette.
type Definition struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	DefaultData any    `json:"defaultData"`
}

type componentType struct {
	label    string
	defaults any
	check    func(raw json.RawMessage, langs *localized.Languages) error
}

var registry = map[string]componentType{
	TypeSlider: {
		label:    "Slider / Galeri",
		defaults: SliderData{Images: []string{}, Height: "400px"},
		check:    checkData[SliderData](nil),
	},
	TypeText: {
		label:    "Metin Alanı",
		defaults: TextData{Content: localized.Text{}, Align: "left"},
		check: checkData(func(d TextData, langs *localized.Languages) error {
			return validateText(langs, "content", d.Content)
		}),
	},
	TypeFeatures: {
		label:    "Özellikler",
		defaults: FeaturesData{Title: localized.Text{}, Items: []string{}},
		check: checkData(func(d FeaturesData, langs *localized.Languages) error {
			return validateText(langs, "title", d.Title)
		}),
	},
	TypeRooms: {
		label:    "Odalar",
		defaults: RoomsData{Limit: 6},
		check:    checkData[RoomsData](nil),
	},
}

// Registry lists the known component types sorted by type.
func Registry() []Definition {
	out := make([]Definition, 0, len(registry))
	for t, def := range registry {
		out = append(out, Definition{Type: t, Label: def.label, DefaultData: def.defaults})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// ValidateComponents checks every component against the registry. Missing data is
// filled with the type's defaults; valid data is returned unchanged.
func ValidateComponents(components []Component, langs *localized.Languages) ([]Component, error) {
	out := make([]Component, 0, len(components))
	seen := make(map[string]bool, len(components))
	for i, c := range components {
		if c.ID == "" {
			return nil, apperr.Validation("components[%d]: id is required", i)
		}
		if seen[c.ID] {
			return nil, apperr.Validation("components[%d]: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = true

		def, ok := registry[c.Type]
		if !ok {
			return nil, apperr.Validation("components[%d]: unknown type %q", i, c.Type)
		}
		if len(bytes.TrimSpace(c.Data)) == 0 || bytes.Equal(bytes.TrimSpace(c.Data), []byte("null")) {
			data, err := json.Marshal(def.defaults)
			if err != nil {
				return nil, err
			}
			c.Data = data
		} else if err := def.check(c.Data, langs); err != nil {
			return nil, apperr.Validation("components[%d] (%s): %s", i, c.Type, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func checkData[T any](extra func(T, *localized.Languages) error) func(json.RawMessage, *localized.Languages) error {
	return func(raw json.RawMessage, langs *localized.Languages) error {
		var v T
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("invalid data: %w", err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return errors.New("invalid data: trailing content")
		}
		if errs := validator.Validate(v); len(errs) > 0 {
			return errors.New(validator.Summary(errs))
		}
		if extra != nil {
			return extra(v, langs)
		}
		return nil
	}
}

func validateText(langs *localized.Languages, field string, t localized.Text) error {
	if langs == nil {
		return nil
	}
	for code := range t {
		if !langs.Supports(code) {
			return fmt.Errorf("%s: %s %q", field, localized.ErrUnsupportedLanguage, code)
		}
	}
	return nil
}
