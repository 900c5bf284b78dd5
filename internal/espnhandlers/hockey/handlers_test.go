package hockey

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flaim/fantasy-mcp-gateway/internal/model"
)

func TestNewDeps_WiresSportAndDefaultSlotNames(t *testing.T) {
	deps := NewDeps(nil, nil, nil, nil)

	assert.Equal(t, model.SportHockey, deps.Sport)
	assert.Nil(t, deps.EligibleSlotNames)
	assert.Equal(t, []string{"C", "SLOT_40"}, deps.SlotNames([]int{0, 40}))
}
