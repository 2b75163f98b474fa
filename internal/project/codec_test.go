package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const sampleProject = `{
  "appVersion": "0.14.4",
  "audioKeys": ["k1", "k2"],
  "audioItems": {
    "k2": {"text": "second", "styleId": 3, "query": null},
    "k1": {
      "text": "こんにちは",
      "styleId": 1,
      "presetKey": "p1",
      "query": {
        "accentPhrases": [{"moras": [], "accent": 1}],
        "speedScale": 1.1,
        "pitchScale": 0.02,
        "intonationScale": 1.0,
        "volumeScale": 0.9,
        "prePhonemeLength": 0.1,
        "postPhonemeLength": 0.2,
        "outputSamplingRate": 24000,
        "outputStereo": false,
        "kana": "コンニチワ"
      }
    }
  }
}`

func TestDecode(t *testing.T) {
	p, err := Decode([]byte(sampleProject))
	require.NoError(t, err)

	assert.Equal(t, "0.14.4", p.AppVersion)
	assert.Equal(t, []string{"k1", "k2"}, p.Keys())

	k1, ok := p.Item("k1")
	require.True(t, ok)
	assert.Equal(t, "こんにちは", k1.Text)
	assert.Equal(t, 1, k1.StyleID)
	assert.Equal(t, "p1", k1.PresetKey)
	require.NotNil(t, k1.Query)
	assert.InDelta(t, 1.1, k1.Query.SpeedScale, 1e-9)
	assert.InDelta(t, 0.02, k1.Query.PitchScale, 1e-9)
	assert.InDelta(t, 0.9, k1.Query.VolumeScale, 1e-9)
	assert.InDelta(t, 0.2, k1.Query.PostPhonemeLength, 1e-9)

	k2, ok := p.Item("k2")
	require.True(t, ok)
	assert.Nil(t, k2.Query)
	assert.Equal(t, 3, k2.StyleID)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"audioKeys": [`},
		{"not object", `[1, 2]`},
		{"keys not array", `{"audioKeys": "k1"}`},
		{"items not object", `{"audioKeys": [], "audioItems": []}`},
		{"missing item", `{"audioKeys": ["k1"], "audioItems": {}}`},
		{"item not object", `{"audioKeys": ["k1"], "audioItems": {"k1": 5}}`},
		{"query not object", `{"audioKeys": ["k1"], "audioItems": {"k1": {"query": 1}}}`},
		{"duplicate key", `{"audioKeys": ["k1", "k1"], "audioItems": {"k1": {}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidProject)
		})
	}
}

func TestEncodePreservesUnmodeledFields(t *testing.T) {
	p, err := Decode([]byte(sampleProject))
	require.NoError(t, err)

	k1, _ := p.Item("k1")
	k1.Text = "edited"
	k1.Query.PitchScale = 0.1
	k1.PresetKey = ""

	data, err := Encode(p)
	require.NoError(t, err)

	doc := gjson.ParseBytes(data)
	assert.Equal(t, "edited", doc.Get("audioItems.k1.text").String())
	assert.InDelta(t, 0.1, doc.Get("audioItems.k1.query.pitchScale").Float(), 1e-9)
	assert.Equal(t, int64(24000), doc.Get("audioItems.k1.query.outputSamplingRate").Int())
	assert.Equal(t, "コンニチワ", doc.Get("audioItems.k1.query.kana").String())
	assert.True(t, doc.Get("audioItems.k1.query.accentPhrases").IsArray())
	assert.False(t, doc.Get("audioItems.k1.presetKey").Exists())
	assert.Equal(t, gjson.Null, doc.Get("audioItems.k2.query").Type)
	assert.Equal(t, `["k1","k2"]`, doc.Get("audioKeys").Raw)
}

func TestEncodeRoundTrip(t *testing.T) {
	p := New()
	a := p.AddItem(&AudioItem{Text: "one", StyleID: 2, Query: DefaultQuery()})
	b := p.AddItem(&AudioItem{Text: "two"})

	data, err := Encode(p, WithIndent())
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, got.Keys())

	item, ok := got.Item(a)
	require.True(t, ok)
	assert.Equal(t, "one", item.Text)
	assert.Equal(t, 2, item.StyleID)
	assert.Equal(t, *DefaultQuery(), *item.Query)

	item, ok = got.Item(b)
	require.True(t, ok)
	assert.Nil(t, item.Query)
}

func TestEncodeEmptyProject(t *testing.T) {
	data, err := Encode(New())
	require.NoError(t, err)

	doc := gjson.ParseBytes(data)
	assert.Equal(t, "[]", doc.Get("audioKeys").Raw)
	assert.Equal(t, "{}", doc.Get("audioItems").Raw)
	assert.Equal(t, DefaultAppVersion, doc.Get("appVersion").String())
}

func TestEncodeInvalidProject(t *testing.T) {
	p := &Project{AudioKeys: []string{"x"}, Items: map[string]*AudioItem{}}
	_, err := Encode(p)
	assert.ErrorIs(t, err, ErrInvalidProject)
}
