package history

import "fmt"

// Kind identifies the editable field a Diff targets.
type Kind int

// Editable fields of an audio item.
const (
	KindText Kind = iota
	KindPitch
	KindSpeed
	KindIntonation
	KindVolume
	KindPreSilence
	KindPostSilence
	KindStyle
)

var kindNames = [...]string{
	KindText:        "text",
	KindPitch:       "pitch",
	KindSpeed:       "speed",
	KindIntonation:  "intonation",
	KindVolume:      "volume",
	KindPreSilence:  "pre_silence",
	KindPostSilence: "post_silence",
	KindStyle:       "style",
}

var kindLabels = [...]string{
	KindText:        "Edit text",
	KindPitch:       "Change pitch",
	KindSpeed:       "Change speed",
	KindIntonation:  "Change intonation",
	KindVolume:      "Change volume",
	KindPreSilence:  "Change leading silence",
	KindPostSilence: "Change trailing silence",
	KindStyle:       "Change voice",
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindText, KindPitch, KindSpeed, KindIntonation,
		KindVolume, KindPreSilence, KindPostSilence, KindStyle,
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= KindText && k <= KindStyle
}

// String returns the stable lowercase name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Label returns a human-readable description for history lists.
func (k Kind) Label() string {
	if !k.Valid() {
		return k.String()
	}
	return kindLabels[k]
}

// IsParameter reports whether k is one of the continuous synthesis
// parameters (the slider-driven kinds).
func (k Kind) IsParameter() bool {
	return k >= KindPitch && k <= KindPostSilence
}

// ParseKind converts a name produced by Kind.String back to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
