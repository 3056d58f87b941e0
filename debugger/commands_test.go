package debugger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteEnableDisableCommands(t *testing.T) {
	dbg := newDebugger(0x02A00293)
	require.NoError(t, dbg.ExecuteCommand("break 0x4"))
	dbg.GetOutput()

	require.NoError(t, dbg.ExecuteCommand("disable 1"))
	assert.Contains(t, dbg.GetOutput(), "disabled")

	require.NoError(t, dbg.ExecuteCommand("enable 1"))
	assert.Contains(t, dbg.GetOutput(), "enabled")

	require.NoError(t, dbg.ExecuteCommand("delete 1"))
	assert.Contains(t, dbg.GetOutput(), "deleted")

	assert.Equal(t, 0, dbg.Breakpoints.Count())
}

func TestTBreakIsTemporary(t *testing.T) {
	dbg := newDebugger(0x02A00293)
	require.NoError(t, dbg.ExecuteCommand("tbreak 0x0"))
	dbg.GetOutput()

	bps := dbg.Breakpoints.GetAllBreakpoints()
	require.Len(t, bps, 1)
	assert.True(t, bps[0].Temporary)
}

func TestInfoBreakpointsEmpty(t *testing.T) {
	dbg := newDebugger(0x02A00293)
	require.NoError(t, dbg.ExecuteCommand("info breakpoints"))
	assert.Contains(t, dbg.GetOutput(), "No breakpoints")
}

func TestNextSetsStepOverTarget(t *testing.T) {
	dbg := newDebugger(0x02A00293, 0x00000013)
	require.NoError(t, dbg.ExecuteCommand("next"))
	assert.Equal(t, uint64(4), dbg.StepOverPC)
}

func TestHelpListsCommands(t *testing.T) {
	dbg := newDebugger(0x02A00293)
	require.NoError(t, dbg.ExecuteCommand("help"))
	assert.Contains(t, dbg.GetOutput(), "RV64IC Debugger Commands")
}
