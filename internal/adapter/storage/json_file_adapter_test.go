package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
	"github.com/rl1809/inventory-ledger/internal/port"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestJSONFile_SaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	adapter := NewJSONFileAdapter(path)

	err := adapter.SaveSnapshot(context.Background(), []domain.Item{
		{Name: "zucchini", Quantity: decimal.NewFromInt(7)},
		{Name: "apple <b>", Quantity: decimal.RequireFromString("2.50")},
		{Name: "épinard", Quantity: decimal.NewFromInt(1)},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"zucchini\": 7,\n  \"apple <b>\": 2.5,\n  \"épinard\": 1\n}\n", string(data))
}

func TestJSONFile_SaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, NewJSONFileAdapter(path).SaveSnapshot(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	snap, err := NewJSONFileAdapter(path).LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
}

func TestJSONFile_SaveOverwrites(t *testing.T) {
	path := writeFile(t, `{"old": 1, "older": 2, "oldest": 3}`)
	adapter := NewJSONFileAdapter(path)

	require.NoError(t, adapter.SaveSnapshot(context.Background(), []domain.Item{
		{Name: "new", Quantity: decimal.NewFromInt(1)},
	}))

	snap, err := adapter.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "new", snap.Items[0].Name)
}

func TestJSONFile_SaveToMissingDirectoryFails(t *testing.T) {
	adapter := NewJSONFileAdapter(filepath.Join(t.TempDir(), "nope", "inventory.json"))
	err := adapter.SaveSnapshot(context.Background(), []domain.Item{{Name: "a", Quantity: decimal.NewFromInt(1)}})
	assert.Error(t, err)
}

func TestJSONFile_LoadKeepsFileOrder(t *testing.T) {
	path := writeFile(t, `{"pear": 3, "apple": 1e1, "fig": 0.25}`)

	snap, err := NewJSONFileAdapter(path).LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Items, 3)

	assert.Equal(t, "pear", snap.Items[0].Name)
	assert.Equal(t, "apple", snap.Items[1].Name)
	assert.True(t, snap.Items[1].Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "fig", snap.Items[2].Name)
	assert.Empty(t, snap.Skipped)
}

func TestJSONFile_LoadSkipsInvalidEntries(t *testing.T) {
	path := writeFile(t, `{
		"apple": 4,
		"pear": "ten",
		"plum": null,
		"kiwi": true,
		"lime": [1],
		"date": {"n": 1},
		"grape": -2,
		"melon": 0,
		"fig": 1.5
	}`)

	snap, err := NewJSONFileAdapter(path).LoadSnapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Items, 2)
	assert.Equal(t, "apple", snap.Items[0].Name)
	assert.Equal(t, "fig", snap.Items[1].Name)

	skipped := map[string]error{}
	for _, s := range snap.Skipped {
		skipped[s.Key] = s.Reason
	}
	assert.Len(t, skipped, 7)
	assert.ErrorIs(t, skipped["pear"], domain.ErrNonNumericQuantity)
	assert.ErrorIs(t, skipped["kiwi"], domain.ErrNonNumericQuantity)
	assert.ErrorIs(t, skipped["grape"], domain.ErrNonPositiveSnapshot)
	assert.ErrorIs(t, skipped["melon"], domain.ErrNonPositiveSnapshot)
}

func TestJSONFile_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "array root", content: `[1, 2]`, wantErr: port.ErrSnapshotNotObject},
		{name: "number root", content: `42`, wantErr: port.ErrSnapshotNotObject},
		{name: "truncated", content: `{"apple": 4,`, wantErr: port.ErrMalformedSnapshot},
		{name: "empty file", content: ``, wantErr: port.ErrMalformedSnapshot},
		{name: "trailing garbage", content: `{"apple": 4} x`, wantErr: port.ErrMalformedSnapshot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJSONFileAdapter(writeFile(t, tt.content)).LoadSnapshot(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJSONFile_LoadMissingFile(t *testing.T) {
	_, err := NewJSONFileAdapter(filepath.Join(t.TempDir(), "missing.json")).LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, port.ErrSnapshotNotFound)
}

func TestJSONFile_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultSnapshotPath, NewJSONFileAdapter("").Location())
}
