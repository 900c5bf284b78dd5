package football

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTables_FootballPositionAndSlotAreDisjointInMeaning(t *testing.T) {
	tables := NewTables(nil)

	assert.Equal(t, "RB", tables.Position.Name(2))
	assert.Equal(t, "RB", tables.Slot.Name(2))
	assert.Equal(t, "QB", tables.Position.Name(1))
	assert.Equal(t, "SLOT_1", tables.Slot.Name(1), "slot id 1 has no defined meaning")
}

func TestPositionSlots_Football(t *testing.T) {
	ids, ok := PositionSlots("FLEX")
	assert.True(t, ok)
	assert.ElementsMatch(t, []int{2, 4, 6}, ids)

	_, ok = PositionSlots("UNKNOWN")
	assert.False(t, ok)

	ids, ok = PositionSlots("ALL")
	assert.False(t, ok)
	assert.Nil(t, ids)

	ids, ok = PositionSlots("")
	assert.False(t, ok)
	assert.Nil(t, ids)
}
