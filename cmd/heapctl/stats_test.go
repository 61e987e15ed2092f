package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap/script"
)

func parseTrace(t *testing.T, src string) *script.Script {
	t.Helper()
	s, err := script.Parse(strings.NewReader(src), "test")
	require.NoError(t, err)
	return s
}

func TestTraceStats(t *testing.T) {
	// Rounded demands: a0 = 8+32, a1 = 8+16 (floored), r0 = 8+64 after
	// growth, f1 drops 24. Peak is with both blocks live and block 0 grown.
	st, err := traceStats(parseTrace(t, `
a 0 32
a 1 10
r 0 64
f 1
`))
	require.NoError(t, err)
	assert.Equal(t, 2, st.Allocs)
	assert.Equal(t, 1, st.Reallocs)
	assert.Equal(t, 1, st.Frees)
	assert.Equal(t, 2, st.MaxLive)
	assert.Equal(t, 96, st.PeakDemand)
	assert.Equal(t, 1, st.FinalLive)
}

func TestTraceStatsZeroResizeReleases(t *testing.T) {
	st, err := traceStats(parseTrace(t, "a 0 32\nr 0 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, st.Reallocs)
	assert.Equal(t, 0, st.FinalLive)
	assert.Equal(t, 40, st.PeakDemand)
}

func TestTraceStatsRejectsBadIDs(t *testing.T) {
	_, err := traceStats(parseTrace(t, "a 0 32\na 0 32\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id 0 already live")

	_, err = traceStats(parseTrace(t, "f 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id 3 not live")
}
