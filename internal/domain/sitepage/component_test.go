package sitepage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theroom/internal/pkg/apperr"
	"theroom/internal/pkg/localized"
)

func testLanguages(t *testing.T) *localized.Languages {
	t.Helper()
	langs, err := localized.NewLanguages([]string{"tr", "en", "ru", "ar"}, "tr")
	require.NoError(t, err)
	return langs
}

func TestValidateComponents_Valid(t *testing.T) {
	in := []Component{
		{ID: "c1", Type: TypeSlider, Data: json.RawMessage(`{"images":["/uploads/a.jpeg"],"height":"500px"}`)},
		{ID: "c2", Type: TypeText, Data: json.RawMessage(`{"content":{"tr":"Merhaba"},"align":"center"}`)},
		{ID: "c3", Type: TypeRooms},
	}
	out, err := ValidateComponents(in, testLanguages(t))
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.JSONEq(t, `{"images":["/uploads/a.jpeg"],"height":"500px"}`, string(out[0].Data))
	assert.JSONEq(t, `{"limit":6}`, string(out[2].Data), "missing data gets defaults")
	assert.Equal(t, []string{"c1", "c2", "c3"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestValidateComponents_Rejects(t *testing.T) {
	cases := map[string][]Component{
		"missing id":      {{Type: TypeRooms}},
		"duplicate id":    {{ID: "a", Type: TypeRooms}, {ID: "a", Type: TypeRooms}},
		"unknown type":    {{ID: "a", Type: "carousel"}},
		"unknown field":   {{ID: "a", Type: TypeSlider, Data: json.RawMessage(`{"images":[],"speed":3}`)}},
		"wrong shape":     {{ID: "a", Type: TypeSlider, Data: json.RawMessage(`{"images":"a.jpeg"}`)}},
		"bad align":       {{ID: "a", Type: TypeText, Data: json.RawMessage(`{"align":"justify"}`)}},
		"limit too large": {{ID: "a", Type: TypeRooms, Data: json.RawMessage(`{"limit":500}`)}},
		"bad language":    {{ID: "a", Type: TypeFeatures, Data: json.RawMessage(`{"title":{"xx":"?"},"items":[]}`)}},
		"blank item":      {{ID: "a", Type: TypeFeatures, Data: json.RawMessage(`{"items":[""]}`)}},
	}
	for name, in := range cases {
		_, err := ValidateComponents(in, testLanguages(t))
		assert.ErrorIs(t, err, apperr.ErrValidation, name)
	}
}

func TestValidateComponents_ErrorNamesIndex(t *testing.T) {
	_, err := ValidateComponents([]Component{
		{ID: "a", Type: TypeRooms},
		{ID: "b", Type: "nope"},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "components[1]")
}

func TestRegistry(t *testing.T) {
	defs := Registry()
	types := make([]string, 0, len(defs))
	for _, d := range defs {
		types = append(types, d.Type)
		b, err := json.Marshal(d.DefaultData)
		require.NoError(t, err)
		_, err = ValidateComponents([]Component{{ID: "x", Type: d.Type, Data: b}}, nil)
		assert.NoError(t, err, "defaults of %s must validate", d.Type)
	}
	assert.Equal(t, []string{TypeFeatures, TypeRooms, TypeSlider, TypeText}, types)
}

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "/about", NormalizeSlug("about"))
	assert.Equal(t, "/about", NormalizeSlug("  /about "))
	assert.Equal(t, "/", NormalizeSlug("/"))
	assert.Equal(t, "", NormalizeSlug("   "))
}
