package editor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/voxtune/internal/engine/history"
	"github.com/dshills/voxtune/internal/project"
)

const sampleProject = `{
  "appVersion": "0.14.0",
  "audioKeys": ["a", "b"],
  "audioItems": {
    "a": {
      "text": "こんにちは",
      "styleId": 1,
      "query": {
        "accentPhrases": [],
        "speedScale": 1,
        "pitchScale": 0,
        "intonationScale": 1,
        "volumeScale": 1,
        "prePhonemeLength": 0.1,
        "postPhonemeLength": 0.1,
        "outputSamplingRate": 24000
      }
    },
    "b": {"text": "world", "styleId": 3}
  }
}`

func loadSample(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s, err := Load("/tmp/sample.vvproj", []byte(sampleProject), opts...)
	require.NoError(t, err)
	return s
}

func floatOf(t *testing.T, s *Session, kind history.Kind, key string) float64 {
	t.Helper()
	v, ok := s.Value(kind, key)
	require.True(t, ok)
	f, ok := v.Float()
	require.True(t, ok)
	return f
}

func TestLoad(t *testing.T) {
	s := loadSample(t)

	assert.Equal(t, "sample.vvproj", s.Name)
	assert.False(t, s.IsScratch())
	assert.False(t, s.Dirty())
	assert.Equal(t, "sample.vvproj", s.Title())
	assert.Equal(t, []string{"a", "b"}, s.Project().Keys())
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load("broken.vvproj", []byte("{"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.vvproj")
}

func TestNewSessionScratch(t *testing.T) {
	s := NewSession("", nil)

	assert.Equal(t, "Untitled", s.Name)
	assert.True(t, s.IsScratch())
	assert.Equal(t, 0, s.Project().Len())
}

func TestDragGesture(t *testing.T) {
	s := loadSample(t)

	for _, v := range []float64{0.02, 0.05, 0.08} {
		_, err := s.Drag(history.KindPitch, "a", v)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, s.History().PendingCount())
	assert.Equal(t, 0.08, floatOf(t, s, history.KindPitch, "a"))

	s.Release()
	require.Equal(t, 1, s.History().UndoCount())
	assert.True(t, s.Dirty())
	assert.Equal(t, "sample.vvproj *", s.Title())

	require.True(t, s.Undo())
	assert.Equal(t, 0.0, floatOf(t, s, history.KindPitch, "a"))

	require.True(t, s.Redo())
	assert.Equal(t, 0.08, floatOf(t, s, history.KindPitch, "a"))
}

func TestDragClampsToRange(t *testing.T) {
	s := loadSample(t, WithRange(history.KindPitch, Range{Min: -0.15, Max: 0.15}))

	d, err := s.Drag(history.KindPitch, "a", 0.9)
	require.NoError(t, err)

	got, _ := d.After.Float()
	assert.Equal(t, 0.15, got)
	assert.Equal(t, 0.15, floatOf(t, s, history.KindPitch, "a"))
}

func TestDragSnapsToStep(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		in   float64
		want float64
	}{
		{"hundredths", Range{Min: -0.15, Max: 0.15, Step: 0.01}, 0.123, 0.12},
		{"twentieths", Range{Min: -0.15, Max: 0.15, Step: 0.05}, 0.08, 0.1},
		{"snapped then clamped", Range{Min: -0.15, Max: 0.15, Step: 0.1}, 0.9, 0.15},
		{"no step", Range{Min: -0.15, Max: 0.15}, 0.123, 0.123},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadSample(t, WithRange(history.KindPitch, tt.r))

			d, err := s.Drag(history.KindPitch, "a", tt.in)
			require.NoError(t, err)

			got, _ := d.After.Float()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, floatOf(t, s, history.KindPitch, "a"))
		})
	}
}

func TestRangeSnapInexactStep(t *testing.T) {
	r := Range{Min: 0, Max: 2, Step: 0.3}
	assert.InDelta(t, 0.9, r.Snap(1.0), 1e-12)
	assert.InDelta(t, 1.2, r.Fit(1.1), 1e-12)
	assert.Equal(t, 2.0, r.Fit(5))
}

func TestDragRejectsNonParameter(t *testing.T) {
	s := loadSample(t)

	_, err := s.Drag(history.KindText, "a", 1)
	assert.ErrorIs(t, err, ErrNotParameter)
	assert.Equal(t, 0, s.History().PendingCount())
}

func TestEditValueTypes(t *testing.T) {
	s := loadSample(t)

	tests := []struct {
		name string
		kind history.Kind
		v    history.Value
	}{
		{"text with number", history.KindText, history.FloatValue(1)},
		{"style with text", history.KindStyle, history.StringValue("x")},
		{"pitch with text", history.KindPitch, history.StringValue("x")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Edit(tt.kind, "a", tt.v)
			assert.ErrorIs(t, err, ErrValueType)
		})
	}
	assert.Equal(t, 0, s.History().PendingCount())
}

func TestEditUnknownKind(t *testing.T) {
	s := loadSample(t)

	_, err := s.Edit(history.Kind(99), "a", history.FloatValue(1))
	assert.ErrorIs(t, err, history.ErrUnknownKind)
}

func TestSetTextNormalizes(t *testing.T) {
	s := loadSample(t)

	// "ga" written as base kana plus combining voiced mark.
	require.NoError(t, s.SetText("b", "\u304b\u3099"))

	v, ok := s.Value(history.KindText, "b")
	require.True(t, ok)
	text, _ := v.Text()
	assert.Equal(t, "\u304c", text)
	assert.Equal(t, 1, s.History().UndoCount())

	require.True(t, s.Undo())
	v, _ = s.Value(history.KindText, "b")
	text, _ = v.Text()
	assert.Equal(t, "world", text)
}

func TestSetStyle(t *testing.T) {
	s := loadSample(t)

	require.NoError(t, s.SetStyle("a", 8))
	item, _ := s.Project().Item("a")
	assert.Equal(t, 8, item.StyleID)

	s.Undo()
	assert.Equal(t, 1, item.StyleID)
}

func TestCancelRevertsGesture(t *testing.T) {
	s := loadSample(t)

	s.Drag(history.KindSpeed, "a", 1.5)
	s.Drag(history.KindSpeed, "a", 1.8)
	s.Cancel()

	assert.Equal(t, 1.0, floatOf(t, s, history.KindSpeed, "a"))
	assert.Equal(t, 0, s.History().PendingCount())
	assert.False(t, s.History().CanUndo())
}

func TestCancelAfterRelease(t *testing.T) {
	s := loadSample(t)

	s.Drag(history.KindSpeed, "a", 1.5)
	s.Release()
	s.Cancel()

	assert.Equal(t, 1.5, floatOf(t, s, history.KindSpeed, "a"))
	assert.Equal(t, 1, s.History().UndoCount())
}

func TestRevertToCheckpoint(t *testing.T) {
	s := loadSample(t, WithHistoryOptions(history.WithMaxEntries(2)))

	require.NoError(t, s.SetText("b", "one"))
	s.Drag(history.KindPitch, "a", 0.05)
	cp := s.Checkpoint()
	assert.Equal(t, 0, s.History().PendingCount())

	require.NoError(t, s.SetText("b", "two"))
	require.NoError(t, s.SetStyle("b", 9))
	s.Drag(history.KindPitch, "a", 0.1)

	require.True(t, s.RevertTo(cp))
	item, _ := s.Project().Item("b")
	assert.Equal(t, "one", item.Text)
	assert.Equal(t, 3, item.StyleID)
	assert.Equal(t, 0.05, floatOf(t, s, history.KindPitch, "a"))
	assert.Equal(t, 0, s.History().PendingCount())
	assert.Equal(t, 2, s.History().RedoCount())
}

func TestRevertToTrimmedCheckpoint(t *testing.T) {
	var buf bytes.Buffer
	s := loadSample(t,
		WithLogger(log.New(&buf)),
		WithHistoryOptions(history.WithMaxEntries(1)))

	cp := s.Checkpoint()
	require.NoError(t, s.SetText("b", "one"))
	require.NoError(t, s.SetText("b", "two"))

	assert.False(t, s.RevertTo(cp))
	item, _ := s.Project().Item("b")
	assert.Equal(t, "one", item.Text)
	assert.Contains(t, buf.String(), "checkpoint no longer in history")
}

func TestUndoCommitsUnfinishedGesture(t *testing.T) {
	s := loadSample(t)

	s.Drag(history.KindVolume, "a", 1.4)
	require.True(t, s.Undo())

	assert.Equal(t, 1.0, floatOf(t, s, history.KindVolume, "a"))
	assert.Equal(t, 0, s.History().PendingCount())
	assert.Equal(t, 1, s.History().RedoCount())
}

func TestJumpTo(t *testing.T) {
	s := loadSample(t)

	for _, v := range []float64{1.1, 1.2, 1.3} {
		s.Drag(history.KindIntonation, "a", v)
		s.Release()
	}

	// Rows: latest marker, then the three edits newest first.
	s.JumpTo(3)
	assert.Equal(t, 1.1, floatOf(t, s, history.KindIntonation, "a"))
	assert.Equal(t, 3, s.History().View().Current)

	s.JumpTo(0)
	assert.Equal(t, 1.3, floatOf(t, s, history.KindIntonation, "a"))
}

func TestSaveClearsDirty(t *testing.T) {
	s := loadSample(t)

	s.Drag(history.KindPreSilence, "a", 0.3)
	data, err := s.Save()
	require.NoError(t, err)

	assert.False(t, s.Dirty())
	assert.Equal(t, 1, s.History().UndoCount())

	p, err := project.Decode(data)
	require.NoError(t, err)
	item, _ := p.Item("a")
	assert.Equal(t, 0.3, item.Query.PrePhonemeLength)

	s.Undo()
	assert.True(t, s.Dirty())
	s.Redo()
	assert.False(t, s.Dirty())
}

func TestLinesAreStructuralChanges(t *testing.T) {
	s := loadSample(t)

	key := s.InsertLine(0, "first", 2, project.DefaultQuery())
	assert.Equal(t, []string{key, "a", "b"}, s.Project().Keys())
	assert.True(t, s.Dirty())
	assert.False(t, s.History().CanUndo())

	_, err := s.Save()
	require.NoError(t, err)
	assert.False(t, s.Dirty())

	added := s.AddLine("last", 2, nil)
	assert.Equal(t, added, s.Project().Keys()[3])
	assert.True(t, s.RemoveLine(added))
	assert.False(t, s.RemoveLine(added))
}

func TestEditsOnRemovedLineAreNoOps(t *testing.T) {
	s := loadSample(t)

	s.Drag(history.KindPitch, "a", 0.1)
	s.Release()
	require.True(t, s.RemoveLine("a"))

	assert.True(t, s.Undo())
	assert.True(t, s.Redo())
	_, ok := s.Value(history.KindPitch, "a")
	assert.False(t, ok)
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := loadSample(t)

	snap := s.Snapshot()
	require.NoError(t, s.SetText("a", "changed"))

	item, _ := snap.Item("a")
	assert.Equal(t, "こんにちは", item.Text)
}

func TestSessionLoggerReachesHistory(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.WarnLevel)

	s := loadSample(t, WithLogger(logger))
	s.Drag(history.KindPitch, "a", 0.1)
	s.Drag(history.KindSpeed, "a", 1.2)
	s.Release()

	assert.True(t, strings.Contains(buf.String(), "cannot squash"))
	assert.Equal(t, 2, s.History().UndoCount())
}

func TestHistoryOptionsPassThrough(t *testing.T) {
	s := loadSample(t, WithHistoryOptions(history.WithMaxEntries(2)))

	for _, v := range []float64{1.1, 1.2, 1.3} {
		s.Drag(history.KindSpeed, "a", v)
		s.Release()
	}
	assert.Equal(t, 2, s.History().UndoCount())
	assert.Equal(t, 2, s.History().MaxEntries())
}

func TestWithRangesIgnoresNonParameters(t *testing.T) {
	s := NewSession("", nil, WithRanges(map[history.Kind]Range{
		history.KindText:   {Min: 0, Max: 1},
		history.KindVolume: {Min: 0, Max: 2},
	}))

	assert.Len(t, s.ranges, 1)
	assert.Contains(t, s.ranges, history.KindVolume)
}
