package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeComposeFile(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	data := []byte("services:\n  app:\n    image: nginx\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func TestResolveInputs(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()

	mainFile := writeComposeFile(t, dirA, "docker-compose.yml")
	overrideFile := writeComposeFile(t, dirA, "docker-compose.override.yml")
	otherFile := writeComposeFile(t, dirB, "compose.yaml")

	tcs := map[string]struct {
		env         map[string]string
		args        []string
		expected    []string
		expectError bool
	}{
		"args take precedence over environment": {
			args: []string{dirA},
			env: map[string]string{
				envPaths: dirB,
			},
			expected: []string{mainFile, overrideFile},
		},
		"explicit file argument kept as-is": {
			args:     []string{mainFile},
			expected: []string{mainFile},
		},
		"paths environment variable": {
			env: map[string]string{
				envPaths: dirA + ";" + dirB,
			},
			expected: []string{mainFile, overrideFile, otherFile},
		},
		"globs environment variable": {
			env: map[string]string{
				envGlobs: filepath.Join(dirA, "docker-compose*.yml"),
			},
			expected: []string{mainFile, overrideFile},
		},
		"paths and globs combine without duplicates": {
			env: map[string]string{
				envPaths: dirA,
				envGlobs: filepath.Join(dirA, "docker-compose.yml"),
			},
			expected: []string{mainFile, overrideFile},
		},
		"paths set but empty": {
			env: map[string]string{
				envPaths: " ; ",
			},
			expectError: true,
		},
		"globs set but empty": {
			env: map[string]string{
				envGlobs: "",
			},
			expectError: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			files, err := resolveInputs(tc.args)

			if tc.expectError {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, files)
		})
	}
}

func TestWriteOutput(t *testing.T) {
	t.Parallel()

	t.Run("stdout", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, writeOutput("-", "content\n", &buf))
		assert.Equal(t, "content\n", buf.String())
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.md")

		var buf bytes.Buffer

		require.NoError(t, writeOutput(path, "content\n", &buf))
		assert.Empty(t, buf.String())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "content\n", string(data))
	})

	t.Run("unwritable path", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		err := writeOutput(filepath.Join(t.TempDir(), "missing", "out.md"), "content\n", &buf)
		require.Error(t, err)
	})
}
