package style_test

import (
	"testing"

	"github.com/on-the-ground/gridview/style"
	"github.com/stretchr/testify/assert"
)

func TestTable_BasicUsage(t *testing.T) {
	table := style.NewTable[string](0)

	table.Store(1, 2, "a")
	v, ok := table.Load(1, 2)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = table.Load(2, 1)
	assert.False(t, ok)

	table.Store(1, 2, "b")
	v, _ = table.Load(1, 2)
	assert.Equal(t, "b", v)
	assert.Equal(t, 1, table.Len())
}

func TestTable_UnboundedNeverRotates(t *testing.T) {
	table := style.NewTable[int](0)
	for i := 0; i < 1000; i++ {
		table.Store(i, i, i)
	}
	assert.Equal(t, 1000, table.Len())
	assert.Equal(t, 0, table.Rotations())
}

func TestTable_RotationDropsColdGeneration(t *testing.T) {
	table := style.NewTable[int](2)

	table.Store(0, 0, 0)
	table.Store(0, 1, 1)
	table.Store(0, 2, 2) // flip: {0,1} become the old generation
	table.Store(0, 3, 3)
	table.Store(0, 4, 4) // flip again: {0,1} are dropped

	_, ok := table.Load(0, 0)
	assert.False(t, ok)
	v, ok := table.Load(0, 3)
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, table.Rotations())
}

func TestTable_DeleteMajor(t *testing.T) {
	table := style.NewTable[int](0)
	table.Store(-1, 0, 1)
	table.Store(3, 0, 2)
	table.Store(4, 0, 3)

	table.DeleteMajor(func(major int) bool { return major >= 0 })
	assert.Equal(t, 1, table.Len())
	_, ok := table.Load(-1, 0)
	assert.True(t, ok)
}
