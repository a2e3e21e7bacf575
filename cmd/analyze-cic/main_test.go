package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	require.NoError(t, run([]string{"-stages", "4", "-factor", "16", "-delay", "2", "-in", "12", "-out", "18"}))
	require.NoError(t, run([]string{"-mode", "interpolate", "-factor", "4"}))
}

func TestRunRejectsBadConfig(t *testing.T) {
	require.Error(t, run([]string{"-delay", "3"}))
	require.Error(t, run([]string{"-in", "8", "-out", "40"}))
	require.Error(t, run([]string{"-bw", "0.7"}))
	require.Error(t, run([]string{"-nosuchflag"}))
}
