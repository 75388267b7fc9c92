package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lazypulumi/internal/pulumi"
)

var testCommands = []pulumi.SlashCommand{
	{Name: "deploy", Description: "Deploy the current stack", Tag: "v1"},
	{Name: "destroy", Description: "Tear everything down", Tag: "v2"},
	{Name: "audit", Description: "Review deployment history", Tag: "v1"},
}

func TestSlashFilter(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		filter string
		active bool
	}{
		{"no slash", "hello world", "", false},
		{"trailing partial", "please /dep", "dep", true},
		{"bare slash", "/", "", true},
		{"whitespace after word", "please /deploy now", "", false},
		{"second slash wins", "/deploy and /des", "des", true},
		{"tab terminates", "/dep\tx", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, active := SlashFilter(tt.input)
			assert.Equal(t, tt.active, active)
			assert.Equal(t, tt.filter, filter)
		})
	}
}

func TestMatchCommands(t *testing.T) {
	t.Run("by name", func(t *testing.T) {
		matched := MatchCommands(testCommands, "dep")
		require.Len(t, matched, 2, "deploy by name, audit by description")
		assert.Equal(t, "deploy", matched[0].Name)
		assert.Equal(t, "audit", matched[1].Name)
	})

	t.Run("case insensitive", func(t *testing.T) {
		matched := MatchCommands(testCommands, "TEAR")
		require.Len(t, matched, 1)
		assert.Equal(t, "destroy", matched[0].Name)
	})

	t.Run("empty filter matches all", func(t *testing.T) {
		assert.Len(t, MatchCommands(testCommands, ""), len(testCommands))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, MatchCommands(testCommands, "zzz"))
	})
}

func TestInsertCommand(t *testing.T) {
	got := InsertCommand("please /dep", testCommands[0])
	assert.Equal(t, "please /deploy ", got)

	got = InsertCommand("/", testCommands[1])
	assert.Equal(t, "/destroy ", got)

	// No slash in the buffer: nothing to replace.
	assert.Equal(t, "hello", InsertCommand("hello", testCommands[0]))
}

func TestCommandReference(t *testing.T) {
	assert.Equal(t, "{{cmd:deploy:v1}}", testCommands[0].Reference())
}
