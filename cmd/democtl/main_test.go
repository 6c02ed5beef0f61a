package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/services"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("APP_MODE", "demo")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func TestDemoctl(t *testing.T) {
	db := filepath.Join(t.TempDir(), "demo.db")
	base := []string{"--backend", "sqlite", "--sqlite-path", db, "--seed", "5"}
	args := func(cmd ...string) []string {
		return append(append([]string{}, cmd...), base...)
	}

	t.Run("status before init", func(t *testing.T) {
		var status services.DemoStatus
		require.NoError(t, json.Unmarshal([]byte(runCLI(t, args("status")...)), &status))
		assert.False(t, status.Initialized)
	})

	t.Run("init writes the dataset", func(t *testing.T) {
		var status services.DemoStatus
		require.NoError(t, json.Unmarshal([]byte(runCLI(t, args("init")...)), &status))
		assert.True(t, status.Initialized)
		assert.Equal(t, 90, status.Counts[domain.KeyHealthMetrics])
	})

	t.Run("second init keeps the marker", func(t *testing.T) {
		var first, second services.DemoStatus
		require.NoError(t, json.Unmarshal([]byte(runCLI(t, args("status")...)), &first))
		require.NoError(t, json.Unmarshal([]byte(runCLI(t, args("init")...)), &second))
		assert.Equal(t, first.InitializedAt, second.InitializedAt)
	})

	t.Run("dashboard", func(t *testing.T) {
		var dash domain.Dashboard
		require.NoError(t, json.Unmarshal([]byte(runCLI(t, args("dashboard")...)), &dash))
		assert.NotNil(t, dash.LatestMetrics)
		assert.NotNil(t, dash.BurnoutRisk)
	})

	t.Run("clear", func(t *testing.T) {
		assert.Contains(t, runCLI(t, args("clear")...), "cleared")

		var status services.DemoStatus
		require.NoError(t, json.Unmarshal([]byte(runCLI(t, args("status")...)), &status))
		assert.False(t, status.Initialized)
		assert.Zero(t, status.Counts[domain.KeyInsights])
	})

	t.Run("reset after clear", func(t *testing.T) {
		var status services.DemoStatus
		require.NoError(t, json.Unmarshal([]byte(runCLI(t, args("reset")...)), &status))
		assert.True(t, status.Initialized)
	})
}

func TestDemoctl_InvalidBackend(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"status", "--backend", "floppy"})
	assert.Error(t, cmd.Execute())
}
