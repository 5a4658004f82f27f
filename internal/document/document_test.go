package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		key    string
		want   uint32
		wantOK bool
	}{
		{name: "present", doc: `{"total_fish":5}`, key: "total_fish", want: 5, wantOK: true},
		{name: "whitespace around colon", doc: `{ "total" :  12 }`, key: "total", want: 12, wantOK: true},
		{name: "absent", doc: `{"total":3}`, key: "max_rarity"},
		{name: "prefix of another key", doc: `{"total_fish":3}`, key: "total"},
		{name: "string value", doc: `{"total":"3"}`, key: "total"},
		{name: "negative", doc: `{"total":-3}`, key: "total"},
		{name: "fraction keeps digit run", doc: `{"total":7.9}`, key: "total", want: 7, wantOK: true},
		{name: "empty document", doc: Empty, key: "total"},
		{name: "blank", doc: "", key: "total"},
		{name: "garbage", doc: `not a document`, key: "total"},
		{name: "overflow", doc: `{"total":99999999999}`, key: "total"},
		{name: "nested key is not top level", doc: `{"fish":{"total":4}}`, key: "total"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.doc, tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, Count(tt.doc, tt.key))
		})
	}
}

func TestObject(t *testing.T) {
	req := `{"fish":{"fish_pond_1":1,"fish_river_2":3},"total_fish":2}`

	raw, ok := Object(req, "fish")
	require.True(t, ok)
	assert.Equal(t, `{"fish_pond_1":1,"fish_river_2":3}`, raw)

	_, ok = Object(req, "total_fish")
	assert.False(t, ok)
	_, ok = Object(Empty, "fish")
	assert.False(t, ok)
}

func TestObjects(t *testing.T) {
	rewards := `{"gold":100,"items":[{"item_id":"pole_2","quantity":1},7,{"item_id":"lure_2","quantity":3,"extra":{"a":1}}]}`

	items := Objects(rewards, "items")
	require.Len(t, items, 2)

	id, ok := String(items[0], "item_id")
	require.True(t, ok)
	assert.Equal(t, "pole_2", id)
	assert.Equal(t, uint32(1), Count(items[0], "quantity"))

	id, ok = String(items[1], "item_id")
	require.True(t, ok)
	assert.Equal(t, "lure_2", id)
	assert.Equal(t, uint32(3), Count(items[1], "quantity"))

	assert.Empty(t, Objects(rewards, "gold"))
	assert.Empty(t, Objects(`{"gold":50}`, "items"))
}

func TestCounts(t *testing.T) {
	got := Counts(`{"fish_pond_1":1,"fish_pond_2":"x","fish_river_1":4}`)
	assert.Equal(t, []Entry{
		{Key: "fish_pond_1", Count: 1},
		{Key: "fish_pond_2", Count: 0},
		{Key: "fish_river_1", Count: 4},
	}, got)
	assert.Empty(t, Counts(`[1,2]`))
	assert.Empty(t, Counts(Empty))
}

func TestSetNumber(t *testing.T) {
	t.Run("append to empty", func(t *testing.T) {
		assert.Equal(t, `{"total":1}`, SetNumber(Empty, "total", 1))
	})
	t.Run("blank input is empty", func(t *testing.T) {
		assert.Equal(t, `{"total":1}`, SetNumber("  ", "total", 1))
	})
	t.Run("replace in place", func(t *testing.T) {
		doc := SetNumber(`{"total": 4, "max_rarity":2}`, "total", 5)
		assert.Equal(t, `{"total": 5, "max_rarity":2}`, doc)
	})
	t.Run("append keeps existing keys", func(t *testing.T) {
		doc := SetNumber(`{"total":4}`, "fish_pond_1", 2)
		assert.Equal(t, uint32(4), Count(doc, "total"))
		assert.Equal(t, uint32(2), Count(doc, "fish_pond_1"))
	})
	t.Run("non-object unchanged", func(t *testing.T) {
		assert.Equal(t, `[1]`, SetNumber(`[1]`, "total", 1))
		assert.Equal(t, `{broken`, SetNumber(`{broken`, "total", 1))
	})
}

func TestIncrementAndRaise(t *testing.T) {
	doc := Empty
	doc = Increment(doc, "fish_pond_1", 1)
	doc = Increment(doc, "total", 1)
	doc = Increment(doc, "total", 1)
	doc = Raise(doc, "max_rarity", 2)
	doc = Raise(doc, "max_rarity", 1)

	assert.Equal(t, uint32(1), Count(doc, "fish_pond_1"))
	assert.Equal(t, uint32(2), Count(doc, "total"))
	assert.Equal(t, uint32(2), Count(doc, "max_rarity"))

	assert.Equal(t, Empty, Raise(Empty, "max_rarity", 0))
	assert.Equal(t, ^uint32(0), Count(Increment(`{"n":4294967295}`, "n", 1), "n"))
}

func TestWith(t *testing.T) {
	doc := With(Empty, "fish_type", "bass")
	doc = With(doc, "size", 12.5)
	doc = With(doc, "rewards", Raw(`{"gold":50}`))

	s, ok := String(doc, "fish_type")
	require.True(t, ok)
	assert.Equal(t, "bass", s)
	raw, ok := Object(doc, "rewards")
	require.True(t, ok)
	assert.Equal(t, uint32(50), Count(raw, "gold"))
}

func TestNormalize(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want string
		ok   bool
	}{
		{"", Empty, true},
		{"  ", Empty, true},
		{`{"a":1}`, `{"a":1}`, true},
		{`[1,2]`, `[1,2]`, false},
		{`{"a":`, `{"a":`, false},
	} {
		got, ok := Normalize(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
