package project

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Paths of the query fields inside a project item.
const (
	pathPitch      = "query.pitchScale"
	pathSpeed      = "query.speedScale"
	pathIntonation = "query.intonationScale"
	pathVolume     = "query.volumeScale"
	pathPre        = "query.prePhonemeLength"
	pathPost       = "query.postPhonemeLength"
)

// EncodeOption configures Encode.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	indent bool
}

// WithIndent produces human readable output.
func WithIndent() EncodeOption {
	return func(o *encodeOptions) {
		o.indent = true
	}
}

// Decode parses a project file (the .vvproj layout).
//
// Items are read in audioKeys order. Each item's decoded JSON is retained
// so that Encode can write back fields the editor does not model.
func Decode(data []byte) (*Project, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidProject)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidProject)
	}

	p := New()
	if v := root.Get("appVersion"); v.Exists() {
		p.AppVersion = v.String()
	}

	keys := root.Get("audioKeys")
	if keys.Exists() && !keys.IsArray() {
		return nil, fmt.Errorf("%w: audioKeys is not an array", ErrInvalidProject)
	}
	items := root.Get("audioItems")
	if items.Exists() && !items.IsObject() {
		return nil, fmt.Errorf("%w: audioItems is not an object", ErrInvalidProject)
	}

	byKey := make(map[string]gjson.Result)
	items.ForEach(func(k, v gjson.Result) bool {
		byKey[k.String()] = v
		return true
	})

	for _, k := range keys.Array() {
		key := k.String()
		v, ok := byKey[key]
		if !ok {
			return nil, fmt.Errorf("%w: key %q has no item", ErrInvalidProject, key)
		}
		item, err := decodeItem(v)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", key, err)
		}
		p.AudioKeys = append(p.AudioKeys, key)
		p.Items[key] = item
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeItem(v gjson.Result) (*AudioItem, error) {
	if !v.IsObject() {
		return nil, fmt.Errorf("%w: item is not an object", ErrInvalidProject)
	}

	item := &AudioItem{
		Text:      v.Get("text").String(),
		StyleID:   int(v.Get("styleId").Int()),
		PresetKey: v.Get("presetKey").String(),
		raw:       v.Raw,
	}

	q := v.Get("query")
	if q.IsObject() {
		item.Query = &Query{
			PitchScale:        q.Get("pitchScale").Float(),
			SpeedScale:        q.Get("speedScale").Float(),
			IntonationScale:   q.Get("intonationScale").Float(),
			VolumeScale:       q.Get("volumeScale").Float(),
			PrePhonemeLength:  q.Get("prePhonemeLength").Float(),
			PostPhonemeLength: q.Get("postPhonemeLength").Float(),
		}
	} else if q.Exists() && q.Type != gjson.Null {
		return nil, fmt.Errorf("%w: query is not an object", ErrInvalidProject)
	}
	return item, nil
}

// Encode serializes the project in the .vvproj layout.
func Encode(p *Project, opts ...EncodeOption) ([]byte, error) {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	keys := p.AudioKeys
	if keys == nil {
		keys = []string{}
	}

	out, err := sjson.Set("{}", "appVersion", p.AppVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	out, err = sjson.Set(out, "audioKeys", keys)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	// Keys are opaque and may contain path syntax, so the items object is
	// assembled directly rather than through sjson paths.
	var b strings.Builder
	b.WriteByte('{')
	for i, key := range keys {
		itemJSON, err := encodeItem(p.Items[key])
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", key, err)
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(name)
		b.WriteByte(':')
		b.WriteString(itemJSON)
	}
	b.WriteByte('}')

	out, err = sjson.SetRaw(out, "audioItems", b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	data := []byte(out)
	if o.indent {
		data = pretty.Pretty(data)
	}
	return data, nil
}

func encodeItem(item *AudioItem) (string, error) {
	doc := item.raw
	if doc == "" {
		doc = "{}"
	}

	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("text", item.Text)
	set("styleId", item.StyleID)

	if q := item.Query; q != nil {
		if !gjson.Get(doc, "query").IsObject() && err == nil {
			doc, err = sjson.SetRaw(doc, "query", "{}")
		}
		set(pathPitch, q.PitchScale)
		set(pathSpeed, q.SpeedScale)
		set(pathIntonation, q.IntonationScale)
		set(pathVolume, q.VolumeScale)
		set(pathPre, q.PrePhonemeLength)
		set(pathPost, q.PostPhonemeLength)
	} else {
		set("query", nil)
	}

	if item.PresetKey != "" {
		set("presetKey", item.PresetKey)
	} else if err == nil && gjson.Get(doc, "presetKey").Exists() {
		doc, err = sjson.Delete(doc, "presetKey")
	}

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return doc, nil
}
