package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArraySequenceBasic(t *testing.T) {
	seq := NewArraySequence[int]()
	seq.Append(10)
	seq.Append(20)
	seq.Append(30)

	assert.Equal(t, 3, seq.Len())
	v, err := seq.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 10, v)
	v, _ = seq.Get(1)
	assert.Equal(t, 20, v)
	v, _ = seq.Get(2)
	assert.Equal(t, 30, v)
}

func TestArraySequenceInsert(t *testing.T) {
	seq := NewArraySequence[int]()
	seq.Append(10)
	seq.Append(30)
	require.NoError(t, seq.Insert(1, 20))

	assert.Equal(t, 3, seq.Len())
	assert.Equal(t, []int{10, 20, 30}, seq.Values())
}

func TestArraySequenceDelete(t *testing.T) {
	seq := NewArraySequence[int]()
	for _, v := range []int{10, 20, 30, 40} {
		seq.Append(v)
	}

	deleted, err := seq.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, 20, deleted)
	assert.Equal(t, []int{10, 30, 40}, seq.Values())
}

func TestArraySequenceOutOfRange(t *testing.T) {
	seq := NewArraySequence[int]()
	_, err := seq.Get(0)
	assert.Error(t, err)

	seq.Append(1)
	assert.Error(t, seq.Set(5, 9))
	assert.Error(t, seq.Insert(5, 9))
	_, err = seq.Delete(5)
	assert.Error(t, err)
}

func TestArraySequenceForEach(t *testing.T) {
	seq := NewArraySequence[int]()
	for i := 0; i < 5; i++ {
		seq.Append(i)
	}

	var seen []int
	seq.ForEach(func(index int, value int) bool {
		seen = append(seen, value)
		return value < 2
	})
	assert.Equal(t, []int{0, 1, 2}, seen)
}
