package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()

	want := []string{"submit", "status", "watch", "verdict", "workspace", "credits", "vault", "session"}
	got := make(map[string]bool)
	for _, c := range root.Commands() {
		got[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, got[name], "missing subcommand %q", name)
	}
}

func TestRootCommandHasDebugFlag(t *testing.T) {
	root := newRootCommand()
	flag := root.PersistentFlags().Lookup("debug")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestSubmitModeValidation(t *testing.T) {
	// The mode flag only admits the two evaluation modes.
	cmd := newSubmitCommand()
	require.NotNil(t, cmd.Flags().Lookup("mode"))
	require.NotNil(t, cmd.Flags().Lookup("watch"))
}

func TestCheckmark(t *testing.T) {
	assert.Equal(t, "x", checkmark(true))
	assert.Equal(t, " ", checkmark(false))
}
