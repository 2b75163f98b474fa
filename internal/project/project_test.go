package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemKeepsOrder(t *testing.T) {
	p := New()
	a := p.AddItem(&AudioItem{Text: "a"})
	b := p.AddItem(&AudioItem{Text: "b"})
	c := p.InsertItem(1, &AudioItem{Text: "c"})

	assert.Equal(t, []string{a, c, b}, p.Keys())
	assert.Equal(t, 3, p.Len())
	assert.NotEqual(t, a, b)
	require.NoError(t, p.Validate())
}

func TestInsertItemClampsIndex(t *testing.T) {
	p := New()
	a := p.InsertItem(-5, &AudioItem{Text: "a"})
	b := p.InsertItem(99, &AudioItem{Text: "b"})
	assert.Equal(t, []string{a, b}, p.Keys())
}

func TestRemoveItem(t *testing.T) {
	p := New()
	a := p.AddItem(&AudioItem{Text: "a"})
	b := p.AddItem(&AudioItem{Text: "b"})

	assert.True(t, p.RemoveItem(a))
	assert.False(t, p.RemoveItem(a))
	assert.Equal(t, []string{b}, p.Keys())

	_, ok := p.Item(a)
	assert.False(t, ok)
}

func TestItemOnNilProject(t *testing.T) {
	var p *Project
	_, ok := p.Item("x")
	assert.False(t, ok)
}

func TestCloneIsDeep(t *testing.T) {
	p := New()
	key := p.AddItem(&AudioItem{Text: "hello", Query: DefaultQuery()})

	c := p.Clone()
	p.Items[key].Text = "changed"
	p.Items[key].Query.PitchScale = 0.1
	p.AudioKeys[0] = "other"

	item, ok := c.Item(key)
	require.True(t, ok)
	assert.Equal(t, "hello", item.Text)
	assert.Equal(t, 0.0, item.Query.PitchScale)
	assert.Equal(t, []string{key}, c.Keys())
}

func TestValidate(t *testing.T) {
	p := &Project{
		AudioKeys: []string{"a", "a"},
		Items:     map[string]*AudioItem{"a": {}},
	}
	assert.ErrorIs(t, p.Validate(), ErrInvalidProject)

	p = &Project{AudioKeys: []string{"missing"}, Items: map[string]*AudioItem{}}
	assert.ErrorIs(t, p.Validate(), ErrInvalidProject)
}
