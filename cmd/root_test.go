/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/allbin/boardfinder"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupWith parses args on a fresh command carrying the persistent flags
// and runs application setup against it.
func setupWith(t *testing.T, args ...string) (*application, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Cleanup(func() { cfgFile = "" })

	cmd := &cobra.Command{Use: "boardfinder"}
	addPersistentFlags(cmd.PersistentFlags())
	require.NoError(t, cmd.ParseFlags(args))

	var stderr bytes.Buffer
	a := &application{stdin: strings.NewReader(""), stdout: &bytes.Buffer{}, stderr: &stderr}
	return a, a.setup(cmd)
}

func TestSetupDefaults(t *testing.T) {
	a, err := setupWith(t)
	require.NoError(t, err)

	assert.Empty(t, a.filter)
	assert.Equal(t, boardfinder.DefaultTable().Families(), a.table.Families())
	assert.Equal(t, zerolog.WarnLevel, a.logger.GetLevel())
	assert.Equal(t, boardfinder.DefaultCommandTimeout, a.settings.CommandTimeout)
	assert.NotNil(t, a.platform)
	assert.NotNil(t, a.runner)
}

func TestSetupFlags(t *testing.T) {
	a, err := setupWith(t, "--device=Arduino,ESP", "--device=Arduino", "--log-level=debug", "--timeout=2s")
	require.NoError(t, err)

	assert.Equal(t, []string{"Arduino", "ESP"}, a.filter)
	assert.Equal(t, zerolog.DebugLevel, a.logger.GetLevel())
	assert.Equal(t, 2*time.Second, a.settings.CommandTimeout)
}

func TestSetupRejectsUnknownFamily(t *testing.T) {
	_, err := setupWith(t, normalizeArgs([]string{"-d", "Arduino", "Teensy"})...)
	assert.ErrorIs(t, err, boardfinder.ErrUnknownFamily)
	assert.Contains(t, err.Error(), `"Teensy"`)

	_, err = setupWith(t, "--device=arduino")
	assert.ErrorIs(t, err, boardfinder.ErrUnknownFamily)
}

func TestSetupConfigFamilies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("families:\n  - name: Pico\n    keywords: [RP2040]\n"), 0o600))

	a, err := setupWith(t, "--config="+path, "--device=Pico")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pico"}, a.filter)
	assert.True(t, a.table.Has("Pico"))
}

func TestSetupRejectsBadLogLevel(t *testing.T) {
	_, err := setupWith(t, "--log-level=chatty")
	assert.Error(t, err)
}

func TestRootFlags(t *testing.T) {
	enable := rootCmd.Flags().Lookup("enable-port")
	require.NotNil(t, enable)
	assert.Equal(t, "all", enable.NoOptDefVal)
	assert.Equal(t, "e", enable.Shorthand)

	device := rootCmd.PersistentFlags().Lookup("device")
	require.NotNil(t, device)
	assert.Equal(t, "d", device.Shorthand)

	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"families", "watch", "doctor", "version"})
}
