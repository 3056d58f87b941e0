package debugger_test

import (
	"testing"

	"github.com/lookbusy1344/rv64ic-emulator/debugger"
	"github.com/stretchr/testify/assert"
)

func TestHistoryAddAndGetAll(t *testing.T) {
	h := debugger.NewCommandHistory()
	h.Add("step")
	h.Add("continue")
	assert.Equal(t, []string{"step", "continue"}, h.GetAll())
}

func TestHistoryIgnoresEmptyAndConsecutiveDuplicates(t *testing.T) {
	h := debugger.NewCommandHistory()
	h.Add("step")
	h.Add("")
	h.Add("step")
	assert.Equal(t, []string{"step"}, h.GetAll())
}

func TestHistoryPreviousNext(t *testing.T) {
	h := debugger.NewCommandHistory()
	h.Add("step")
	h.Add("continue")

	assert.Equal(t, "continue", h.Previous())
	assert.Equal(t, "step", h.Previous())
	assert.Equal(t, "", h.Previous())

	assert.Equal(t, "continue", h.Next())
}

func TestHistorySearch(t *testing.T) {
	h := debugger.NewCommandHistory()
	h.Add("break 0x100")
	h.Add("break 0x200")
	h.Add("step")

	results := h.Search("break")
	assert.Len(t, results, 2)
}
