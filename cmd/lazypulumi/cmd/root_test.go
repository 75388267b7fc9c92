package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	SetVersion("v1.2.3", "abc123def", "2024-01-15")

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	versionCmd.Run(versionCmd, []string{})

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, err := buf.ReadFrom(r)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "lazypulumi")
	assert.Contains(t, output, "v1.2.3")
	assert.Contains(t, output, "abc123def")
	assert.Contains(t, output, "2024-01-15")
}

func TestLoadSettings_EnvBinding(t *testing.T) {
	t.Setenv("PULUMI_ACCESS_TOKEN", "pul-testtoken")
	t.Setenv("PULUMI_API_URL", "https://api.example.com")
	t.Setenv("PULUMI_ORG", "acme")
	t.Setenv("LOG_FILTER", "api=debug")

	require.NoError(t, initConfig())
	settings, err := loadSettings()
	require.NoError(t, err)

	assert.Equal(t, "pul-testtoken", settings.AccessToken)
	assert.Equal(t, "https://api.example.com", settings.APIURL)
	assert.Equal(t, "acme", settings.Organization)
	assert.Equal(t, "api=debug", settings.LogFilter)
}

func TestExecute_PrintsErrorOnce(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"lazypulumi", "--no-such-flag"}
	defer func() { os.Args = oldArgs }()

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	err := Execute()

	w.Close()
	os.Stderr = oldStderr

	require.Error(t, err)

	var buf bytes.Buffer
	_, readErr := buf.ReadFrom(r)
	require.NoError(t, readErr)

	output := buf.String()
	assert.Contains(t, output, "Error:")
	assert.Contains(t, output, "no-such-flag")
	assert.Equal(t, 1, strings.Count(output, "Error:"), "the error prints exactly once")
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{"org", "api-url", "log-level", "log-filter", "log-file"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
}
