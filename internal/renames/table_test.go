package renames

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableLookup(t *testing.T) {
	table := New([]Entry{
		{Old: "вулиця Леніна", New: "вулиця Симона Петлюри"},
		{Old: "вулиця Артема", New: "вулиця Січових Стрільців"},
	})

	t.Run("old name resolves to new variants", func(t *testing.T) {
		vars := table.Lookup("леніна")
		require.NotEmpty(t, vars)
		assert.Contains(t, vars, "симона петлюри")
	})

	t.Run("cross folded old name resolves too", func(t *testing.T) {
		vars := table.Lookup("ленина")
		require.NotEmpty(t, vars)
		assert.Contains(t, vars, "симона петлюри")
	})

	t.Run("unknown name yields nil", func(t *testing.T) {
		assert.Nil(t, table.Lookup("шевченка"))
	})

	t.Run("no bare surname keys", func(t *testing.T) {
		assert.Nil(t, table.Lookup("січових"))
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "renames.yaml")
	data := "- old: вулиця Леніна\n  new: вулиця Симона Петлюри\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, len(table.Lookup("леніна")))
	assert.Positive(t, table.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}
