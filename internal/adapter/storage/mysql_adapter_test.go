package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
	"github.com/rl1809/inventory-ledger/internal/port"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/inventory?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	return db
}

func newMySQLTestAdapter(t *testing.T, db *sql.DB, ledger string) *MySQLAdapter {
	ctx := context.Background()
	adapter := NewMySQLAdapter(db, ledger)
	if err := adapter.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	db.ExecContext(ctx, `DELETE FROM inventory_items WHERE ledger = ?`, ledger)
	db.ExecContext(ctx, `DELETE FROM inventory_snapshots WHERE ledger = ?`, ledger)
	return adapter
}

func TestMySQLSnapshot_RoundTrip(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := newMySQLTestAdapter(t, db, "test-roundtrip")

	items := []domain.Item{
		{Name: "zucchini", Quantity: decimal.NewFromInt(7)},
		{Name: "apple", Quantity: decimal.RequireFromString("2.5")},
		{Name: "banana", Quantity: decimal.NewFromInt(2)},
	}
	if err := adapter.SaveSnapshot(ctx, items); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	snap, err := adapter.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(snap.Items) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(snap.Items))
	}
	for i, want := range items {
		got := snap.Items[i]
		if got.Name != want.Name || !got.Quantity.Equal(want.Quantity) {
			t.Errorf("item %d: expected %s=%s, got %s=%s", i, want.Name, want.Quantity, got.Name, got.Quantity)
		}
	}
}

func TestMySQLSnapshot_VersionIncrements(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := newMySQLTestAdapter(t, db, "test-version")

	adapter.SaveSnapshot(ctx, nil)
	adapter.SaveSnapshot(ctx, []domain.Item{{Name: "a", Quantity: decimal.NewFromInt(1)}})

	var version int
	db.QueryRowContext(ctx, `SELECT version FROM inventory_snapshots WHERE ledger = 'test-version'`).Scan(&version)
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}
}

func TestMySQLSnapshot_NotFound(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	adapter := newMySQLTestAdapter(t, db, "test-missing")

	_, err := adapter.LoadSnapshot(context.Background())
	if !errors.Is(err, port.ErrSnapshotNotFound) {
		t.Errorf("expected ErrSnapshotNotFound, got: %v", err)
	}
}

func TestMySQLSnapshot_SkipsNullQuantity(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := newMySQLTestAdapter(t, db, "test-null")

	adapter.SaveSnapshot(ctx, []domain.Item{
		{Name: "good", Quantity: decimal.NewFromInt(3)},
		{Name: "bad", Quantity: decimal.NewFromInt(3)},
	})
	db.ExecContext(ctx, `UPDATE inventory_items SET quantity = NULL WHERE ledger = 'test-null' AND item_name = 'bad'`)

	snap, err := adapter.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(snap.Items) != 1 || snap.Items[0].Name != "good" {
		t.Errorf("expected only 'good', got %+v", snap.Items)
	}
	if len(snap.Skipped) != 1 {
		t.Errorf("expected 1 skipped entry, got %d", len(snap.Skipped))
	}
}
