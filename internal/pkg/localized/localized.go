// Package localized implements per-language text values stored as JSON objects.
package localized

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"theroom/internal/pkg/apperr"
)

// Text maps a language code to its value, e.g. {"tr": "Deniz Manzarası", "en": "Sea View"}.
type Text map[string]string

// Get returns the value for lang, falling back to defaultLang and then to the first
// non-empty value in language order. An empty Text yields "".
func (t Text) Get(lang, defaultLang string) string {
	if v := t[lang]; v != "" {
		return v
	}
	if v := t[defaultLang]; v != "" {
		return v
	}
	keys := make([]string, 0, len(t))
	for k, v := range t {
		if v != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return t[keys[0]]
}

// Parse reads a form value holding a serialized Text. Input that is not a JSON
// object of strings is kept verbatim under defaultLang; blank input yields an empty Text.
func Parse(raw, defaultLang string) Text {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Text{}
	}
	var out Text
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return Text{defaultLang: raw}
	}
	return out
}

// Set returns a copy of t with lang set to value. t is not modified.
func (t Text) Set(lang, value string) Text {
	out := make(Text, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	out[lang] = value
	return out
}

// Clone returns a copy that is never nil.
func (t Text) Clone() Text {
	out := make(Text, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

func (t Text) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Text) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Text{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("localized: cannot scan %T", src)
	}
	out := Text{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
	}
	*t = out
	return nil
}

// GormDataType keeps the column portable between sqlite and postgres.
func (Text) GormDataType() string { return "text" }

// Languages is the allow-list of language codes a tenant may store.
type Languages struct {
	codes   map[string]bool
	Default string
}

var ErrUnsupportedLanguage = errors.New("unsupported language")

// NewLanguages parses codes as BCP 47 tags. The default must be one of them.
func NewLanguages(codes []string, defaultLang string) (*Languages, error) {
	l := &Languages{codes: make(map[string]bool, len(codes))}
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		tag, err := language.Parse(c)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", c, err)
		}
		l.codes[tag.String()] = true
	}
	def, err := language.Parse(strings.TrimSpace(defaultLang))
	if err != nil {
		return nil, fmt.Errorf("invalid default language %q: %w", defaultLang, err)
	}
	if !l.codes[def.String()] {
		return nil, fmt.Errorf("default language %q is not in the supported set", defaultLang)
	}
	l.Default = def.String()
	return l, nil
}

// Supports reports whether code is in the allow-list.
func (l *Languages) Supports(code string) bool {
	tag, err := language.Parse(code)
	if err != nil {
		return false
	}
	return l.codes[tag.String()] && tag.String() == code
}

// Codes lists the allowed codes in sorted order.
func (l *Languages) Codes() []string {
	out := make([]string, 0, len(l.codes))
	for c := range l.codes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Validate rejects keys outside the allow-list. field names the value in the error.
func (l *Languages) Validate(field string, t Text) error {
	for k := range t {
		if !l.Supports(k) {
			return apperr.Validation("%s: %s %q", field, ErrUnsupportedLanguage, k)
		}
	}
	return nil
}
