package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"journalrank"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const draftsYAML = `
- date: "2024-01-01"
  text: I went running in the park
- date: "2024-01-02"
  day: Tuesday
  text: Cooked pasta for dinner
- date: "2024-01-03"
  text: Morning running with the dog
- date: "2024-01-04"
  day: Monday
  text: This weekday is wrong
`

func TestCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal")
	common := []string{"--db", db, "--user", "alice"}

	out, err := run(t, append([]string{"import", "--file", writeFile(t, "entries.yaml", draftsYAML)}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Stored 3 entries (0 already present), rejected 1")
	assert.Contains(t, out, "draft 3")

	out, err = run(t, append([]string{"add", "--date", "2024-01-05"}, append(common, "Rainy", "day", "reading")...)...)
	require.NoError(t, err)
	assert.Equal(t, "Entry stored\n", out)

	out, err = run(t, append([]string{"add", "--date", "2024-01-05", "--text", "Rainy day reading"}, common...)...)
	require.NoError(t, err)
	assert.Equal(t, "Entry already stored\n", out)

	t.Run("list", func(t *testing.T) {
		out, err := run(t, append([]string{"list"}, common...)...)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "2024-01-01 (Monday) I went running in the park", lines[0])
		assert.Equal(t, "2024-01-05 (Friday) Rainy day reading", lines[3])

		out, err = run(t, append([]string{"list", "--from", "2024-01-02", "--to", "2024-01-03"}, common...)...)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out, "\n"))
	})

	t.Run("search keyword", func(t *testing.T) {
		out, err := run(t, append([]string{"search", "--mode", "keyword"}, append(common, "running")...)...)
		require.NoError(t, err)
		assert.Contains(t, out, `1. 2024-01-01 (Monday) — 200% — "I went running in the park"`)
		assert.Contains(t, out, "2. 2024-01-03 (Wednesday)")
	})

	t.Run("search with largest top-k", func(t *testing.T) {
		out, err := run(t, append([]string{"search", "--top-k", "9223372036854775807"}, append(common, "running")...)...)
		require.NoError(t, err)
		assert.Equal(t, 4, strings.Count(out, "\n"))
	})

	t.Run("search no match", func(t *testing.T) {
		out, err := run(t, append([]string{"search", "--mode", "keyword"}, append(common, "xylophone")...)...)
		require.NoError(t, err)
		assert.Equal(t, "No matching entries\n", out)
	})

	t.Run("search requires query", func(t *testing.T) {
		_, err := run(t, append([]string{"search"}, common...)...)
		assert.ErrorContains(t, err, "query is required")
	})

	t.Run("search rejects unknown mode", func(t *testing.T) {
		_, err := run(t, append([]string{"search", "--mode", "fuzzy"}, append(common, "running")...)...)
		assert.Error(t, err)
	})

	t.Run("ask falls back when the model is unreachable", func(t *testing.T) {
		out, err := run(t, append([]string{"ask", "--host", "http://127.0.0.1:1", "--max-attempts", "1", "--mode", "keyword"},
			append(common, "running")...)...)
		require.NoError(t, err)
		assert.Contains(t, out, `Found 2 entries related to "running".`)
		assert.Contains(t, out, "Sources:")
	})
}

func TestConfigFile(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal")
	cfgPath := writeFile(t, "journalrank.yaml", "user: bob\ndatabase:\n  path: "+db+"\nsearch:\n  mode: keyword\n")

	_, err := run(t, "--config", cfgPath, "add", "--date", "2024-03-01", "--text", "Garden tomatoes planted")
	require.NoError(t, err)

	out, err := run(t, "--config", cfgPath, "search", "tomatoes")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-03-01 (Friday)")

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "list")
	assert.Error(t, err)
}

func TestUserRequired(t *testing.T) {
	_, err := run(t, "list", "--db", filepath.Join(t.TempDir(), "journal"))
	assert.ErrorContains(t, err, "user is required")
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"INFO", false},
		{"warn", false},
		{"error", false},
		{"verbose", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := setupLogger(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommandFlags(t *testing.T) {
	app := newApp(&bytes.Buffer{})

	find := func(cmd string) *cli.Command {
		for _, c := range app.Commands {
			if c.Name == cmd {
				return c
			}
		}
		return nil
	}

	for _, name := range []string{"add", "import", "list", "search", "ask"} {
		require.NotNil(t, find(name), name)
	}

	t.Run("add requires date", func(t *testing.T) {
		_, err := run(t, "add", "--db", filepath.Join(t.TempDir(), "j"), "--user", "alice", "--text", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "date")
	})

	t.Run("import requires file", func(t *testing.T) {
		_, err := run(t, "import", "--user", "alice")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file")
	})
}
