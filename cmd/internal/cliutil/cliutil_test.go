package cliutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGlobalArgs(t *testing.T) {
	g, cmd, rest := ParseGlobalArgs([]string{"-v", "rename", "-c", "cfg.yaml", "-w", "a.js", "b.js"})
	assert.Equal(t, 1, g.Verbose)
	assert.Equal(t, "cfg.yaml", g.ConfigPath)
	assert.Equal(t, "rename", cmd)
	assert.Equal(t, []string{"-w", "a.js", "b.js"}, rest)

	g, cmd, rest = ParseGlobalArgs([]string{"--config=x.yaml", "-vv", "-v", "--no-color", "scan", "--help"})
	assert.Equal(t, 2, g.Verbose)
	assert.Equal(t, "x.yaml", g.ConfigPath)
	assert.True(t, g.NoColor)
	assert.True(t, g.HelpFlag)
	assert.Equal(t, "scan", cmd)
	assert.Empty(t, rest)
}
