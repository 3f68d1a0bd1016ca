package zones

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneIndex(t *testing.T) {
	index, err := NewZoneIndex([]string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 3, index.Length())
	i, ok := index.Index("c")
	require.True(t, ok)
	assert.Equal(t, 2, i)
	assert.Equal(t, "b", index.ID(1))
	assert.Equal(t, []string{"a", "b", "c"}, index.IDs())
	_, ok = index.Index("x")
	assert.False(t, ok)

	_, err = NewZoneIndex([]int{1, 2, 1})
	assert.ErrorIs(t, err, ErrDuplicateZone)
}

func TestFloatMatrix(t *testing.T) {
	origins, err := NewZoneIndex([]string{"a", "b"})
	require.NoError(t, err)
	destinations, err := NewZoneIndex([]string{"x", "y", "z"})
	require.NoError(t, err)
	m := NewMatrix[string, float64](origins, destinations)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())

	require.NoError(t, m.Set("b", "y", 2.5))
	require.NoError(t, m.Add("b", "y", 1.5))
	require.NoError(t, m.Add("a", "z", 1))
	v, err := m.Get("b", "y")
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
	assert.Equal(t, 4.0, m.GetAt(1, 1))
	assert.Equal(t, []float64{0, 0, 1}, m.Row(0))

	_, err = m.Get("x", "a")
	assert.ErrorIs(t, err, ErrUnknownZone)
	assert.ErrorIs(t, m.Set("a", "q", 1), ErrUnknownZone)
	assert.ErrorIs(t, m.Add("q", "x", 1), ErrUnknownZone)

	m.FillColumn(2, -1)
	assert.Equal(t, -1.0, m.GetAt(0, 2))
	assert.Equal(t, -1.0, m.GetAt(1, 2))
	m.FillRow(0, 9)
	assert.Equal(t, []float64{9, 9, 9}, m.Row(0))
	m.Fill(0)
	assert.Equal(t, []float64{0, 0, 0}, m.Row(1))
}

func TestSymmetricIntMatrix(t *testing.T) {
	index, err := NewZoneIndex([]int64{10, 20})
	require.NoError(t, err)
	m := NewMatrix[int64, uint16](index, index)
	require.NoError(t, m.Set(20, 10, 7))
	require.NoError(t, m.Add(20, 10, 3))
	v, err := m.Get(20, 10)
	require.NoError(t, err)
	assert.Equal(t, uint16(10), v)
	v, err = m.Get(10, 20)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), v)
	assert.Same(t, m.Origins(), m.Destinations())
}

func TestPathMatrix(t *testing.T) {
	origins, err := NewZoneIndex([]string{"a"})
	require.NoError(t, err)
	destinations, err := NewZoneIndex([]string{"x", "y"})
	require.NoError(t, err)
	m := NewPathMatrix(origins, destinations)

	require.NoError(t, m.Set("a", "y", []int32{4, 2, 9}))
	path, err := m.Get("a", "y")
	require.NoError(t, err)
	assert.Equal(t, []int32{4, 2, 9}, path)
	path, err = m.Get("a", "x")
	require.NoError(t, err)
	assert.Nil(t, path)

	_, err = m.Get("b", "x")
	assert.ErrorIs(t, err, ErrUnknownZone)
	assert.ErrorIs(t, m.Set("a", "z", nil), ErrUnknownZone)
}
