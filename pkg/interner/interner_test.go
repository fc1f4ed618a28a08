package interner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternerBasic(t *testing.T) {
	in := New()

	id1 := in.Intern("hello")
	id2 := in.Intern("world")
	id3 := in.Intern("hello")

	assert.Equal(t, id1, id3)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, in.Len())
}

func TestInternerResolve(t *testing.T) {
	in := New()

	id := in.Intern("test string")
	s, ok := in.Resolve(id)
	assert.True(t, ok)
	assert.Equal(t, "test string", s)
}

func TestInternerRefCounting(t *testing.T) {
	in := New()

	id := in.Intern("hello")
	assert.Equal(t, uint32(1), in.RefCount(id))

	in.Intern("hello")
	assert.Equal(t, uint32(2), in.RefCount(id))

	in.Release(id)
	assert.Equal(t, uint32(1), in.RefCount(id))

	in.Release(id)
	assert.Equal(t, uint32(0), in.RefCount(id))
	_, ok := in.Resolve(id)
	assert.False(t, ok)
}

func TestInternerIDReuse(t *testing.T) {
	in := New()

	id1 := in.Intern("first")
	_ = in.Intern("second")

	in.Release(id1)

	id3 := in.Intern("third")
	assert.Equal(t, id1, id3)
	s, ok := in.Resolve(id3)
	assert.True(t, ok)
	assert.Equal(t, "third", s)
}

func TestInternerStats(t *testing.T) {
	in := New()

	in.Intern("hello")
	in.Intern("world")
	in.Intern("hello")

	stats := in.Stats()
	assert.Equal(t, 2, stats.UniqueStrings)
	assert.Equal(t, uint64(3), stats.TotalReferences)
}

func TestInternerEmptyString(t *testing.T) {
	in := New()

	id := in.Intern("")
	s, ok := in.Resolve(id)
	assert.True(t, ok)
	assert.Equal(t, "", s)
}

func TestInternerAddRef(t *testing.T) {
	in := New()

	id := in.Intern("test")
	assert.Equal(t, uint32(1), in.RefCount(id))

	in.AddRef(id)
	assert.Equal(t, uint32(2), in.RefCount(id))
}

func TestInternerResolveUnchecked(t *testing.T) {
	in := New()

	id := in.Intern("gone")
	in.Release(id)

	_, ok := in.Resolve(id)
	assert.False(t, ok)

	s, ok := in.ResolveUnchecked(id)
	assert.True(t, ok)
	assert.Equal(t, "gone", s)
}
