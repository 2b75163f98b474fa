package history

import "github.com/dshills/voxtune/internal/project"

// field reads and writes one editable field of an audio item.
// Both functions report false when the field is unavailable, for example a
// parameter on an item that has no query yet.
type field struct {
	get func(item *project.AudioItem) (Value, bool)
	set func(item *project.AudioItem, v Value) bool
}

// fields maps each kind to its accessor.
var fields = [...]field{
	KindText: {
		get: func(item *project.AudioItem) (Value, bool) {
			return StringValue(item.Text), true
		},
		set: func(item *project.AudioItem, v Value) bool {
			s, ok := v.Text()
			if ok {
				item.Text = s
			}
			return ok
		},
	},
	KindPitch:       queryField(func(q *project.Query) *float64 { return &q.PitchScale }),
	KindSpeed:       queryField(func(q *project.Query) *float64 { return &q.SpeedScale }),
	KindIntonation:  queryField(func(q *project.Query) *float64 { return &q.IntonationScale }),
	KindVolume:      queryField(func(q *project.Query) *float64 { return &q.VolumeScale }),
	KindPreSilence:  queryField(func(q *project.Query) *float64 { return &q.PrePhonemeLength }),
	KindPostSilence: queryField(func(q *project.Query) *float64 { return &q.PostPhonemeLength }),
	KindStyle: {
		get: func(item *project.AudioItem) (Value, bool) {
			return IntValue(item.StyleID), true
		},
		set: func(item *project.AudioItem, v Value) bool {
			id, ok := v.Int()
			if ok {
				item.StyleID = id
			}
			return ok
		},
	},
}

func queryField(ref func(q *project.Query) *float64) field {
	return field{
		get: func(item *project.AudioItem) (Value, bool) {
			if item.Query == nil {
				return Value{}, false
			}
			return FloatValue(*ref(item.Query)), true
		},
		set: func(item *project.AudioItem, v Value) bool {
			f, ok := v.Float()
			if !ok || item.Query == nil {
				return false
			}
			*ref(item.Query) = f
			return true
		},
	}
}

// Read returns the current value of the field named by kind on the item
// stored under key. The boolean is false if the item or field is absent.
func Read(p *project.Project, kind Kind, key string) (Value, bool) {
	if !kind.Valid() {
		return Value{}, false
	}
	item, ok := p.Item(key)
	if !ok {
		return Value{}, false
	}
	return fields[kind].get(item)
}

// write stores v into the field named by kind on the item under key.
// Missing items and fields are skipped silently.
func write(p *project.Project, kind Kind, key string, v Value) bool {
	if !kind.Valid() {
		return false
	}
	item, ok := p.Item(key)
	if !ok {
		return false
	}
	return fields[kind].set(item, v)
}
