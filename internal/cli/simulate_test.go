package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateCommand_ParseFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cmd := NewSimulateCommand()

		require.NoError(t, cmd.ParseFlags(nil))

		assert.Equal(t, 20, cmd.Pages)
		assert.Equal(t, 5, cmd.PoolSize)
		assert.Equal(t, 1, cmd.From)
		assert.Equal(t, time.Second, cmd.TurnTime)
		assert.Equal(t, "per-page", cmd.Mode)
	})

	t.Run("custom values", func(t *testing.T) {
		cmd := NewSimulateCommand()

		require.NoError(t, cmd.ParseFlags([]string{"-pages", "40", "-pool", "3", "-to", "31", "-time", "2s", "-mode", "total"}))

		assert.Equal(t, 40, cmd.Pages)
		assert.Equal(t, 3, cmd.PoolSize)
		assert.Equal(t, 31, cmd.To)
		assert.Equal(t, 2*time.Second, cmd.TurnTime)
		assert.Equal(t, "total", cmd.Mode)
	})

	t.Run("rejects an empty pool", func(t *testing.T) {
		cmd := NewSimulateCommand()

		assert.Error(t, cmd.ParseFlags([]string{"-pool", "0"}))
	})
}

func TestSimulateCommand_Run(t *testing.T) {
	t.Run("prints the schedule and every leaf", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewSimulateCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-pages", "20", "-to", "11", "-time", "1s"}))
		cmd.Out = &out

		require.NoError(t, cmd.Run())

		text := out.String()
		assert.Contains(t, text, "Schedule: 5 leaves, 1s per leaf, 1.8s total, 200ms between starts")
		assert.Equal(t, 5, strings.Count(text, " start "))
		assert.Equal(t, 5, strings.Count(text, " end "))
		assert.Contains(t, text, "done   OpenMiddle on page 11")
		assert.Contains(t, text, "Showing pages 11-12")
	})

	t.Run("backward jump", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewSimulateCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-from", "9", "-to", "3", "-time", "100ms"}))
		cmd.Out = &out

		require.NoError(t, cmd.Run())

		assert.Equal(t, 3, strings.Count(out.String(), " start "))
		assert.Contains(t, out.String(), "Showing pages 3-4")
	})

	t.Run("same group completes at once", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewSimulateCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-from", "5", "-to", "6"}))
		cmd.Out = &out

		require.NoError(t, cmd.Run())

		assert.NotContains(t, out.String(), "Schedule")
		assert.Contains(t, out.String(), "done   OpenMiddle on page 6")
	})

	t.Run("invalid target", func(t *testing.T) {
		cmd := NewSimulateCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-pages", "10", "-to", "30"}))
		cmd.Out = &bytes.Buffer{}

		assert.Error(t, cmd.Run())
	})

	t.Run("unknown mode", func(t *testing.T) {
		cmd := NewSimulateCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-mode", "fast"}))
		cmd.Out = &bytes.Buffer{}

		assert.Error(t, cmd.Run())
	})
}
