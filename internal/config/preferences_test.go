package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferences_Defaults(t *testing.T) {
	prefs := DefaultPreferences()
	assert.True(t, prefs.ShowSplash)
}

func TestPreferences_RoundTripPreservesUnknownFields(t *testing.T) {
	input := []byte(`{"show_splash":false,"theme":"dark","layout":{"sidebar":true}}`)

	var prefs Preferences
	require.NoError(t, json.Unmarshal(input, &prefs))
	assert.False(t, prefs.ShowSplash)

	out, err := json.Marshal(prefs)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.JSONEq(t, `"dark"`, string(raw["theme"]))
	assert.JSONEq(t, `{"sidebar":true}`, string(raw["layout"]))
	assert.JSONEq(t, `false`, string(raw["show_splash"]))
}

func TestPreferences_MissingFieldDefaultsTrue(t *testing.T) {
	var prefs Preferences
	require.NoError(t, json.Unmarshal([]byte(`{"theme":"light"}`), &prefs))
	assert.True(t, prefs.ShowSplash)
}

func TestLoadPreferences_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	prefs, err := LoadPreferences()
	require.NoError(t, err)
	assert.True(t, prefs.ShowSplash)
}

func TestLoadPreferences_CorruptFileFallsBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, appDirName)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600))

	prefs, err := LoadPreferences()
	require.Error(t, err)
	assert.True(t, prefs.ShowSplash, "corrupt file should fall back to defaults")
}

func TestSaveAndLoadPreferences(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	prefs := DefaultPreferences()
	prefs.ShowSplash = false
	require.NoError(t, SavePreferences(prefs))

	loaded, err := LoadPreferences()
	require.NoError(t, err)
	assert.False(t, loaded.ShowSplash)
}

func TestSavePreferences_KeepsForeignFields(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := PreferencesPath()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(`{"show_splash":true,"future_field":123}`), 0o600))

	prefs, err := LoadPreferences()
	require.NoError(t, err)
	prefs.ShowSplash = false
	require.NoError(t, SavePreferences(prefs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `123`, string(raw["future_field"]))
	assert.JSONEq(t, `false`, string(raw["show_splash"]))
}
