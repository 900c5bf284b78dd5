package baseball

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flaim/fantasy-mcp-gateway/internal/idmap"
)

func TestNewTables_SameIDDifferentConceptTrap(t *testing.T) {
	tables := NewTables(nil)

	// Position id 6 is "SS" but slot id 6 is "MI" — the same number
	// means something different in each table.
	assert.Equal(t, "SS", tables.Position.Name(6))
	assert.Equal(t, "MI", tables.Slot.Name(6))
}

func TestNewTables_ExcludedSlotsFallBackToSlotPrefix(t *testing.T) {
	tables := NewTables(nil)

	for _, id := range []int{18, 21, 22} {
		assert.Equal(t, fmt.Sprintf("SLOT_%d", id), tables.Slot.Name(id))
	}
}

func TestPositionSlots_Baseball(t *testing.T) {
	ids, ok := PositionSlots("OUTFIELD")
	assert.True(t, ok)
	assert.ElementsMatch(t, []int{5, 8, 9, 10}, ids)

	ids, ok = PositionSlots("INFIELD")
	assert.True(t, ok)
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, ids)

	_, ok = PositionSlots("CATCHER")
	assert.False(t, ok)
}

func TestTransformEligiblePositions_DropsExcludedSlots(t *testing.T) {
	tables := NewTables(nil)

	names := TransformEligiblePositions(tables, []int{1, 18, 4, 21, 6})

	assert.Equal(t, []string{"1B", "SS", "MI"}, names)
}

func TestTransformEligiblePositions_EmptyInputYieldsEmptySlice(t *testing.T) {
	tables := NewTables(nil)

	names := TransformEligiblePositions(tables, nil)

	assert.NotNil(t, names)
	assert.Empty(t, names)
	var _ idmap.Tables = tables
}
