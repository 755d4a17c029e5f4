package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMap_PreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("c", 1)
	m.Set("a", 2)
	m.Set("b", 3)
	m.Set("a", 4) // overwrite keeps position

	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
	assert.Equal(t, 3, m.Len())

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
	}
	assert.Equal(t, []string{"c", "a", "b"}, seen)
}

func TestOrderedMap_KeysIsACopy(t *testing.T) {
	m := NewOrderedMap[string]()
	m.Set("x", "1")

	keys := m.Keys()
	keys[0] = "mutated"

	assert.Equal(t, []string{"x"}, m.Keys())
}

func TestOrderedMap_NilSafe(t *testing.T) {
	var m *OrderedMap[string]
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	assert.False(t, m.Has("x"))
	for range m.All() {
		t.Fatal("nil map yielded an entry")
	}
}

func TestOrderedMap_AllStopsEarly(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("a", 1)
	m.Set("b", 2)

	count := 0
	for range m.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}
