package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_NoSubcommand(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{})

	err := root.Execute()
	require.Error(t, err)
	assert.EqualError(t, err, "Usage: reddit-scout <scan|reply|warmup|status>")
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"frobnicate"})

	err := root.Execute()
	require.Error(t, err)
	assert.EqualError(t, err, "Unknown command: frobnicate")
}

func TestReplyCmd_RequiresPostAndText(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", []string{"reply"}},
		{"missing text", []string{"reply", "abc1"}},
		{"too many arguments", []string{"reply", "abc1", "hello", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCmd()
			root.SetArgs(tt.args)

			err := root.Execute()
			require.Error(t, err)
			assert.EqualError(t, err, "Usage: reply <post_id> <text> [--live]")
		})
	}
}

func TestRootCmd_WiresAllOperations(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0, 4)
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Contains(t, names, "scan")
	assert.Contains(t, names, "reply")
	assert.Contains(t, names, "warmup")
	assert.Contains(t, names, "status")
}
