package history

import "fmt"

// Diff records one change to one field of one audio item.
// Diffs are plain values; once on a stack they are never modified.
type Diff struct {
	Kind   Kind
	Key    string // key of the target audio item
	Before Value
	After  Value
}

// NewDiff creates a Diff template carrying only the desired after value.
func NewDiff(kind Kind, key string, after Value) Diff {
	return Diff{Kind: kind, Key: key, After: after}
}

// TextDiff creates a template for a text edit.
func TextDiff(key, text string) Diff {
	return NewDiff(KindText, key, StringValue(text))
}

// ParameterDiff creates a template for a synthesis parameter edit.
func ParameterDiff(kind Kind, key string, v float64) Diff {
	return NewDiff(kind, key, FloatValue(v))
}

// StyleDiff creates a template for a voice style change.
func StyleDiff(key string, styleID int) Diff {
	return NewDiff(KindStyle, key, IntValue(styleID))
}

// SameTarget reports whether d and o edit the same field of the same item.
func (d Diff) SameTarget(o Diff) bool {
	return d.Kind == o.Kind && d.Key == o.Key
}

// Description returns a human-readable description of the change.
func (d Diff) Description() string {
	return fmt.Sprintf("%s %s -> %s", d.Kind.Label(), d.Before, d.After)
}

// String implements fmt.Stringer.
func (d Diff) String() string {
	return fmt.Sprintf("%s[%s] %s -> %s", d.Kind, d.Key, d.Before, d.After)
}
