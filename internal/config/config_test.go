package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Toml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nmodlfront.toml")
	content := "include = [\"mechanisms/\"]\nsuppress = [\"E-DUP-SYM\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	proj, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"mechanisms/"}, proj.Include)
	assert.True(t, proj.Suppresses("E-DUP-SYM"))
	assert.False(t, proj.Suppresses("E-LEX-UNK"))
}

func TestLoad_Yaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nmodlfront.yaml")
	content := "include:\n  - mechanisms/\nsuppress:\n  - E-DUP-SYM\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	proj, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"mechanisms/"}, proj.Include)
	assert.True(t, proj.Suppresses("E-DUP-SYM"))
}

func TestDefault_SuppressesNothing(t *testing.T) {
	proj := Default()
	assert.False(t, proj.Suppresses("E-LEX-UNK"))
}
