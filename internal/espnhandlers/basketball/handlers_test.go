package basketball

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

func TestNewDeps_WiresSportAndDefaultSlotNames(t *testing.T) {
	deps := NewDeps(nil, nil, nil, nil)

	assert.Equal(t, model.SportBasketball, deps.Sport)
	assert.Nil(t, deps.EligibleSlotNames, "basketball has no override, falls back to Tables.Slot.Name")
	assert.Equal(t, []string{"PG", "SLOT_99"}, deps.SlotNames([]int{0, 99}))
}
