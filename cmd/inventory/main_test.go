package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
)

func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	base := []string{
		"--config", filepath.Join(dir, "absent.yaml"),
		"--file", filepath.Join(dir, "inventory.json"),
		"--backend", "file",
	}
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDemoWritesSnapshot(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "inventory.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"apple\": 7,\n  \"banana\": 2\n}\n", string(data))
}

func TestAddGetRemove(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "add", "widget", "4.5")
	require.NoError(t, err)
	_, err = runCLI(t, dir, "add", "gadget", "9")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "get", "widget")
	require.NoError(t, err)
	assert.Equal(t, "4.5", strings.TrimSpace(out))

	out, err = runCLI(t, dir, "low")
	require.NoError(t, err)
	assert.Equal(t, "widget", strings.TrimSpace(out))

	out, err = runCLI(t, dir, "low", "--threshold", "10")
	require.NoError(t, err)
	assert.Equal(t, "widget\ngadget", strings.TrimSpace(out))

	_, err = runCLI(t, dir, "remove", "widget", "4.5")
	require.NoError(t, err)

	out, err = runCLI(t, dir, "get", "widget")
	require.NoError(t, err)
	assert.Equal(t, "0", strings.TrimSpace(out))
}

func TestRemoveErrorsSurface(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "remove", "ghost", "1")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = runCLI(t, dir, "add", "widget", "lots")
	assert.Error(t, err)

	_, err = runCLI(t, dir, "--backend", "s3", "report")
	assert.Error(t, err)
}
