// Package project holds the in-memory document edited by voxtune: an ordered
// list of audio items (lines), each with text, a voice style and an optional
// set of synthesis parameters.
//
// Items are addressed by opaque string keys. The order of AudioKeys is the
// playback and display order. Structural changes (adding or removing items)
// are made directly on the Project; field edits go through the history engine.
package project

import (
	"fmt"

	"github.com/google/uuid"
)

// DefaultAppVersion is written into projects created by voxtune.
const DefaultAppVersion = "0.14.0"

// Query is the per-item synthesis parameter bundle.
// Range clamping is a caller concern; the project stores whatever it is given.
type Query struct {
	PitchScale        float64
	SpeedScale        float64
	IntonationScale   float64
	VolumeScale       float64
	PrePhonemeLength  float64
	PostPhonemeLength float64
}

// DefaultQuery returns the neutral parameter bundle.
func DefaultQuery() *Query {
	return &Query{
		PitchScale:        0,
		SpeedScale:        1,
		IntonationScale:   1,
		VolumeScale:       1,
		PrePhonemeLength:  0.1,
		PostPhonemeLength: 0.1,
	}
}

// AudioItem is one line of the project.
type AudioItem struct {
	Text      string
	StyleID   int
	Query     *Query
	PresetKey string

	// raw is the item's JSON as it was decoded. Fields the editor does not
	// model (accent phrases, kana, output format) are carried through it.
	raw string
}

// Clone returns a deep copy of the item.
func (a *AudioItem) Clone() *AudioItem {
	c := *a
	if a.Query != nil {
		q := *a.Query
		c.Query = &q
	}
	return &c
}

// Project is an ordered collection of audio items.
type Project struct {
	AppVersion string
	AudioKeys  []string
	Items      map[string]*AudioItem
}

// New creates an empty project.
func New() *Project {
	return &Project{
		AppVersion: DefaultAppVersion,
		Items:      make(map[string]*AudioItem),
	}
}

// Item returns the item stored under key.
// The boolean is false when no such item exists.
func (p *Project) Item(key string) (*AudioItem, bool) {
	if p == nil || p.Items == nil {
		return nil, false
	}
	item, ok := p.Items[key]
	if !ok || item == nil {
		return nil, false
	}
	return item, true
}

// Len returns the number of items in display order.
func (p *Project) Len() int {
	return len(p.AudioKeys)
}

// Keys returns a copy of the item keys in display order.
func (p *Project) Keys() []string {
	keys := make([]string, len(p.AudioKeys))
	copy(keys, p.AudioKeys)
	return keys
}

// IndexOf returns the display position of key, or -1.
func (p *Project) IndexOf(key string) int {
	for i, k := range p.AudioKeys {
		if k == key {
			return i
		}
	}
	return -1
}

// AddItem appends item under a freshly generated key and returns the key.
func (p *Project) AddItem(item *AudioItem) string {
	return p.InsertItem(len(p.AudioKeys), item)
}

// InsertItem inserts item at display position index under a freshly
// generated key. Out of range indexes are clamped.
func (p *Project) InsertItem(index int, item *AudioItem) string {
	if p.Items == nil {
		p.Items = make(map[string]*AudioItem)
	}

	key := uuid.NewString()
	for p.Items[key] != nil {
		key = uuid.NewString()
	}

	if index < 0 {
		index = 0
	}
	if index > len(p.AudioKeys) {
		index = len(p.AudioKeys)
	}

	p.AudioKeys = append(p.AudioKeys, "")
	copy(p.AudioKeys[index+1:], p.AudioKeys[index:])
	p.AudioKeys[index] = key
	p.Items[key] = item
	return key
}

// RemoveItem deletes the item stored under key.
// Returns false if the key is unknown.
func (p *Project) RemoveItem(key string) bool {
	if _, ok := p.Item(key); !ok {
		return false
	}
	delete(p.Items, key)
	if i := p.IndexOf(key); i >= 0 {
		p.AudioKeys = append(p.AudioKeys[:i], p.AudioKeys[i+1:]...)
	}
	return true
}

// Clone returns a deep copy of the project, suitable for handing off to
// background work such as saving or synthesis.
func (p *Project) Clone() *Project {
	c := &Project{
		AppVersion: p.AppVersion,
		AudioKeys:  p.Keys(),
		Items:      make(map[string]*AudioItem, len(p.Items)),
	}
	for k, item := range p.Items {
		if item != nil {
			c.Items[k] = item.Clone()
		}
	}
	return c
}

// Validate checks that every key in AudioKeys refers to an item and that
// keys are unique.
func (p *Project) Validate() error {
	seen := make(map[string]bool, len(p.AudioKeys))
	for _, key := range p.AudioKeys {
		if seen[key] {
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidProject, key)
		}
		seen[key] = true
		if _, ok := p.Item(key); !ok {
			return fmt.Errorf("%w: key %q has no item", ErrInvalidProject, key)
		}
	}
	return nil
}
