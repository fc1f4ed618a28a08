package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTieredVectorBasic(t *testing.T) {
	seq := NewTieredVectorSequence[int]()
	seq.Append(10)
	seq.Append(20)
	seq.Append(30)

	assert.Equal(t, 3, seq.Len())
	v, err := seq.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 10, v)
	v, _ = seq.Get(2)
	assert.Equal(t, 30, v)
}

func TestTieredVectorInsert(t *testing.T) {
	seq := NewTieredVectorSequence[int]()
	for i := 0; i < 10; i++ {
		seq.Append(i)
	}

	require.NoError(t, seq.Insert(5, 99))
	assert.Equal(t, 11, seq.Len())
	v, _ := seq.Get(5)
	assert.Equal(t, 99, v)
	v, _ = seq.Get(6)
	assert.Equal(t, 5, v)
}

func TestTieredVectorDelete(t *testing.T) {
	seq := NewTieredVectorSequence[int]()
	for i := 0; i < 10; i++ {
		seq.Append(i * 10)
	}

	deleted, err := seq.Delete(5)
	require.NoError(t, err)
	assert.Equal(t, 50, deleted)
	assert.Equal(t, 9, seq.Len())
	v, _ := seq.Get(4)
	assert.Equal(t, 40, v)
	v, _ = seq.Get(5)
	assert.Equal(t, 60, v)
	v, _ = seq.Get(8)
	assert.Equal(t, 90, v)
}

func TestTieredVectorInsertCorrectnessAfterSplits(t *testing.T) {
	seq := NewTieredVectorSequence[int]()
	for i := 0; i < 100; i++ {
		seq.Append(i)
	}

	require.NoError(t, seq.Insert(25, 9990))
	require.NoError(t, seq.Insert(50, 9991))
	require.NoError(t, seq.Insert(75, 9992))

	assert.Equal(t, 103, seq.Len())

	v, _ := seq.Get(25)
	assert.Equal(t, 9990, v)
	v, _ = seq.Get(50)
	assert.Equal(t, 9991, v)
	v, _ = seq.Get(75)
	assert.Equal(t, 9992, v)

	v, _ = seq.Get(0)
	assert.Equal(t, 0, v)
	v, _ = seq.Get(24)
	assert.Equal(t, 24, v)
	v, _ = seq.Get(26)
	assert.Equal(t, 25, v)
	v, _ = seq.Get(51)
	assert.Equal(t, 49, v)
	v, _ = seq.Get(76)
	assert.Equal(t, 73, v)
	v, _ = seq.Get(102)
	assert.Equal(t, 99, v)
}

func TestTieredVectorInsertAtAllPositions(t *testing.T) {
	for insertPos := 0; insertPos <= 20; insertPos++ {
		seq := NewTieredVectorSequence[int]()
		for i := 0; i < 20; i++ {
			seq.Append(i)
		}

		require.NoError(t, seq.Insert(insertPos, 999))
		assert.Equal(t, 21, seq.Len(), "insertPos=%d", insertPos)

		for i := 0; i < 21; i++ {
			var expected int
			switch {
			case i < insertPos:
				expected = i
			case i == insertPos:
				expected = 999
			default:
				expected = i - 1
			}
			v, _ := seq.Get(i)
			assert.Equal(t, expected, v, "index %d after inserting at %d", i, insertPos)
		}
	}
}

func TestTieredVectorDeleteMaintainsIndices(t *testing.T) {
	seq := NewTieredVectorSequence[int]()
	for i := 0; i < 20; i++ {
		seq.Append(i * 10)
	}

	deleted, err := seq.Delete(10)
	require.NoError(t, err)
	assert.Equal(t, 100, deleted)
	assert.Equal(t, 19, seq.Len())

	v, _ := seq.Get(9)
	assert.Equal(t, 90, v)
	v, _ = seq.Get(10)
	assert.Equal(t, 110, v)
	v, _ = seq.Get(18)
	assert.Equal(t, 190, v)

	deleted, err = seq.Delete(0)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	v, _ = seq.Get(0)
	assert.Equal(t, 10, v)

	deleted, err = seq.Delete(seq.Len() - 1)
	require.NoError(t, err)
	assert.Equal(t, 190, deleted)
}

func TestTieredVectorMixedOperations(t *testing.T) {
	seq := NewTieredVectorSequence[int]()
	for i := 0; i < 50; i++ {
		seq.Append(i * 2)
	}
	for i := 0; i < 50; i++ {
		require.NoError(t, seq.Insert(i*2+1, i*2+1))
	}

	assert.Equal(t, 100, seq.Len())
	for i := 0; i < 100; i++ {
		v, _ := seq.Get(i)
		assert.Equal(t, i, v, "index %d after mixed operations", i)
	}
}

func TestTieredVectorForEachOrder(t *testing.T) {
	seq := NewTieredVectorSequence[int]()
	for i := 0; i < 100; i++ {
		seq.Append(i)
	}

	values := seq.Values()
	assert.Len(t, values, 100)
	for i, v := range values {
		assert.Equal(t, i, v)
	}
}

func TestTieredVectorRebalance(t *testing.T) {
	seq := NewTieredVectorSequence[int]()
	for i := 0; i < 100; i++ {
		seq.Append(i)
	}

	for i := 49; i >= 0; i-- {
		_, err := seq.Delete(i * 2)
		require.NoError(t, err)
	}

	assert.Equal(t, 50, seq.Len())

	seq.Rebalance()

	expected := make([]int, 0, 50)
	for i := 0; i < 100; i++ {
		if i%2 == 1 {
			expected = append(expected, i)
		}
	}
	for i, want := range expected {
		v, err := seq.Get(i)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

func TestTieredVectorSingleElement(t *testing.T) {
	seq := NewTieredVectorSequence[int]()

	seq.Append(42)
	assert.Equal(t, 1, seq.Len())
	v, _ := seq.Get(0)
	assert.Equal(t, 42, v)

	require.NoError(t, seq.Set(0, 99))
	v, _ = seq.Get(0)
	assert.Equal(t, 99, v)

	deleted, err := seq.Delete(0)
	require.NoError(t, err)
	assert.Equal(t, 99, deleted)
	assert.Equal(t, 0, seq.Len())
}

func TestTieredVectorEmpty(t *testing.T) {
	seq := NewTieredVectorSequence[int]()

	assert.Equal(t, 0, seq.Len())
	assert.True(t, seq.IsEmpty())
	_, err := seq.Get(0)
	assert.Error(t, err)
}

func TestTieredVectorLargeScale(t *testing.T) {
	seq := NewTieredVectorSequence[int]()
	n := 10000

	for i := 0; i < n; i++ {
		seq.Append(i)
	}
	assert.Equal(t, n, seq.Len())

	v, _ := seq.Get(0)
	assert.Equal(t, 0, v)
	v, _ = seq.Get(n / 2)
	assert.Equal(t, n/2, v)
	v, _ = seq.Get(n - 1)
	assert.Equal(t, n-1, v)

	require.NoError(t, seq.Insert(n/2, 99999))
	v, _ = seq.Get(n / 2)
	assert.Equal(t, 99999, v)
	v, _ = seq.Get(n/2 + 1)
	assert.Equal(t, n/2, v)

	_, err := seq.Delete(n / 2)
	require.NoError(t, err)
	v, _ = seq.Get(n / 2)
	assert.Equal(t, n/2, v)
}

func TestTieredVectorSet(t *testing.T) {
	seq := NewTieredVectorSequence[int]()
	for i := 0; i < 20; i++ {
		seq.Append(i)
	}

	require.NoError(t, seq.Set(0, 100))
	require.NoError(t, seq.Set(10, 200))
	require.NoError(t, seq.Set(19, 300))

	v, _ := seq.Get(0)
	assert.Equal(t, 100, v)
	v, _ = seq.Get(10)
	assert.Equal(t, 200, v)
	v, _ = seq.Get(19)
	assert.Equal(t, 300, v)

	v, _ = seq.Get(1)
	assert.Equal(t, 1, v)
}

func TestTieredVectorInsertAtBeginning(t *testing.T) {
	seq := NewTieredVectorSequence[int]()
	for i := 0; i < 20; i++ {
		seq.Append(i + 1)
	}

	require.NoError(t, seq.Insert(0, 0))

	assert.Equal(t, 21, seq.Len())
	for i := 0; i < 21; i++ {
		v, _ := seq.Get(i)
		assert.Equal(t, i, v)
	}
}

func TestTieredVectorInsertAtEnd(t *testing.T) {
	seq := NewTieredVectorSequence[int]()
	for i := 0; i < 20; i++ {
		seq.Append(i)
	}

	require.NoError(t, seq.Insert(20, 20))

	assert.Equal(t, 21, seq.Len())
	for i := 0; i < 21; i++ {
		v, _ := seq.Get(i)
		assert.Equal(t, i, v)
	}
}

func TestTieredVectorErrorHandling(t *testing.T) {
	seq := NewTieredVectorSequence[int]()

	_, err := seq.Get(0)
	assert.Error(t, err)
	assert.Error(t, seq.Insert(1, 42))

	seq.Append(1)
	seq.Append(2)

	_, err = seq.Get(2)
	assert.Error(t, err)
	_, err = seq.Get(100)
	assert.Error(t, err)

	_, err = seq.Delete(2)
	assert.Error(t, err)
	_, err = seq.Delete(100)
	assert.Error(t, err)

	assert.Error(t, seq.Set(2, 99))
}

func TestTieredVectorCustomBlockSize(t *testing.T) {
	seq := NewTieredVectorSequenceWithBlockSize[int](4)
	for i := 0; i < 100; i++ {
		seq.Append(i)
	}
	assert.Equal(t, 100, seq.Len())
	assert.LessOrEqual(t, seq.idealBlockSize(), 64) // clamped to 16*minBlockSize
	assert.GreaterOrEqual(t, seq.idealBlockSize(), 4)

	for i := 0; i < 100; i++ {
		v, err := seq.Get(i)
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
}

func TestTieredVectorInvalidBlockSizeFallsBackToDefaults(t *testing.T) {
	seq := NewTieredVectorSequenceWithBlockSize[int](0)
	seq.Append(1)
	assert.Equal(t, MinBlockSize, seq.idealBlockSize())
}
