package debugger_test

import (
	"testing"

	"github.com/lookbusy1344/rv64ic-emulator/debugger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBreakpoint(t *testing.T) {
	bm := debugger.NewBreakpointManager()
	bp := bm.AddBreakpoint(0x1000, false)
	assert.Equal(t, uint64(0x1000), bp.Address)
	assert.True(t, bp.Enabled)
	assert.Equal(t, 1, bm.Count())
}

func TestAddBreakpointAtSameAddressUpdates(t *testing.T) {
	bm := debugger.NewBreakpointManager()
	first := bm.AddBreakpoint(0x1000, false)
	second := bm.AddBreakpoint(0x1000, true)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, bm.Count())
	assert.True(t, second.Temporary)
}

func TestDeleteBreakpoint(t *testing.T) {
	bm := debugger.NewBreakpointManager()
	bp := bm.AddBreakpoint(0x2000, false)
	require.NoError(t, bm.DeleteBreakpoint(bp.ID))
	assert.Equal(t, 0, bm.Count())
	assert.Error(t, bm.DeleteBreakpoint(bp.ID))
}

func TestEnableDisableBreakpoint(t *testing.T) {
	bm := debugger.NewBreakpointManager()
	bp := bm.AddBreakpoint(0x3000, false)

	require.NoError(t, bm.DisableBreakpoint(bp.ID))
	assert.False(t, bm.GetBreakpoint(0x3000).Enabled)

	require.NoError(t, bm.EnableBreakpoint(bp.ID))
	assert.True(t, bm.GetBreakpoint(0x3000).Enabled)
}

func TestProcessHitIgnoresDisabled(t *testing.T) {
	bm := debugger.NewBreakpointManager()
	bp := bm.AddBreakpoint(0x4000, false)
	require.NoError(t, bm.DisableBreakpoint(bp.ID))

	assert.Nil(t, bm.ProcessHit(0x4000))
}

func TestProcessHitDeletesTemporary(t *testing.T) {
	bm := debugger.NewBreakpointManager()
	bm.AddBreakpoint(0x5000, true)

	hit := bm.ProcessHit(0x5000)
	require.NotNil(t, hit)
	assert.Equal(t, 1, hit.HitCount)
	assert.Equal(t, 0, bm.Count())
}

func TestProcessHitIncrementsPersistentBreakpoint(t *testing.T) {
	bm := debugger.NewBreakpointManager()
	bm.AddBreakpoint(0x6000, false)

	bm.ProcessHit(0x6000)
	hit := bm.ProcessHit(0x6000)
	assert.Equal(t, 2, hit.HitCount)
	assert.Equal(t, 1, bm.Count())
}

func TestClear(t *testing.T) {
	bm := debugger.NewBreakpointManager()
	bm.AddBreakpoint(0x1000, false)
	bm.AddBreakpoint(0x2000, false)
	bm.Clear()
	assert.Equal(t, 0, bm.Count())
}
