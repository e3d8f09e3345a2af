package formfield

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type features struct {
	TV   bool `json:"tv"`
	Wifi bool `json:"wifi"`
}

type fakeForm map[string]string

func (f fakeForm) GetPostForm(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

func TestDecode_Parsed(t *testing.T) {
	f := Decode[map[string]string](`{"tr":"Oda","en":"Room"}`)

	v, ok := f.Parsed()
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"tr": "Oda", "en": "Room"}, v)
}

func TestDecode_MalformedKeepsRawExactly(t *testing.T) {
	f := Decode[map[string]string](`{"tr": "Oda"`)

	_, ok := f.Parsed()
	assert.False(t, ok)
	assert.Equal(t, `{"tr": "Oda"`, f.Raw())
}

func TestDecode_PlainStringIsRaw(t *testing.T) {
	f := Decode[map[string]string]("Deniz Manzaralı Oda")

	_, ok := f.Parsed()
	assert.False(t, ok)
	assert.Equal(t, "Deniz Manzaralı Oda", f.Raw())
}

func TestDecode_WrongShapeIsRaw(t *testing.T) {
	f := Decode[features](`["tv"]`)
	_, ok := f.Parsed()
	assert.False(t, ok)
	assert.Equal(t, `["tv"]`, f.Raw())
}

func TestLookup(t *testing.T) {
	form := fakeForm{"features": `{"tv":true,"wifi":false}`}

	f, ok := Lookup[features](form, "features")
	assert.True(t, ok)
	v, parsed := f.Parsed()
	assert.True(t, parsed)
	assert.Equal(t, features{TV: true}, v)

	_, ok = Lookup[features](form, "bathroom")
	assert.False(t, ok)
}

func TestField_JSONParsed(t *testing.T) {
	b, err := json.Marshal(Decode[features](`{"tv":true}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"tv":true,"wifi":false}`, string(b))

	var back Field[features]
	require.NoError(t, json.Unmarshal(b, &back))
	v, ok := back.Parsed()
	assert.True(t, ok)
	assert.Equal(t, features{TV: true}, v)
}

func TestField_JSONRawRoundTrip(t *testing.T) {
	raw := `{"tv": yes}`
	b, err := json.Marshal(Decode[features](raw))
	require.NoError(t, err)
	assert.Equal(t, `"{\"tv\": yes}"`, string(b))

	var back Field[features]
	require.NoError(t, json.Unmarshal(b, &back))
	_, ok := back.Parsed()
	assert.False(t, ok)
	assert.Equal(t, raw, back.Raw())
}

func TestField_UnmarshalSerializedObjectString(t *testing.T) {
	var f Field[features]
	require.NoError(t, json.Unmarshal([]byte(`"{\"wifi\":true}"`), &f))

	v, ok := f.Parsed()
	assert.True(t, ok)
	assert.Equal(t, features{Wifi: true}, v)
}

func TestOfAndRawText(t *testing.T) {
	v, ok := Of(features{TV: true}).Parsed()
	assert.True(t, ok)
	assert.True(t, v.TV)

	assert.Equal(t, "n/a", RawText[features]("n/a").Raw())
}

func TestDecodeWith_KeepsDefaults(t *testing.T) {
	f := DecodeWith(`{"tv":true}`, features{Wifi: true})
	v, ok := f.Parsed()
	require.True(t, ok)
	assert.Equal(t, features{TV: true, Wifi: true}, v)

	f = DecodeWith(`{"tv":true,"wifi":false}`, features{Wifi: true})
	v, _ = f.Parsed()
	assert.Equal(t, features{TV: true, Wifi: false}, v)

	f = DecodeWith("tv, wifi", features{Wifi: true})
	_, ok = f.Parsed()
	assert.False(t, ok)
	assert.Equal(t, "tv, wifi", f.Raw())
}

func TestLookupWith(t *testing.T) {
	form := fakeForm{"features": ` {"tv":true} `}

	f, ok := LookupWith(form, "features", features{Wifi: true})
	require.True(t, ok)
	v, parsed := f.Parsed()
	require.True(t, parsed)
	assert.Equal(t, features{TV: true, Wifi: true}, v)

	_, ok = LookupWith(form, "bathroom", features{})
	assert.False(t, ok)
}
