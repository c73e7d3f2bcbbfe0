package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("TALLY_TEST_DIR", "/var/lib/tally")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare tilde", input: "~", want: home},
		{name: "tilde prefix", input: "~/data/tally.db", want: filepath.Join(home, "data/tally.db")},
		{name: "env var", input: "$TALLY_TEST_DIR/tally.db", want: "/var/lib/tally/tally.db"},
		{name: "plain path untouched", input: "/tmp/tally.db", want: "/tmp/tally.db"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestSetupLogging(t *testing.T) {
	require.NoError(t, SetupLogging("debug", "console"))
	require.NoError(t, SetupLogging("info", "json"))
	require.NoError(t, SetupLogging("warn", "console"))
	require.NoError(t, SetupLogging("error", "json"))

	assert.Error(t, SetupLogging("verbose", "console"))
	assert.Error(t, SetupLogging("info", "xml"))
	assert.Error(t, SetupLogging("", ""))
}
