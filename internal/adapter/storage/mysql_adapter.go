package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
	"github.com/rl1809/inventory-ledger/internal/port"
)

const DefaultMySQLLedger = "default"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS inventory_snapshots (
		ledger   VARCHAR(64) NOT NULL PRIMARY KEY,
		version  BIGINT NOT NULL DEFAULT 0,
		saved_at DATETIME(6) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_items (
		ledger    VARCHAR(64) NOT NULL,
		item_name VARCHAR(255) NOT NULL,
		position  INT NOT NULL,
		quantity  DECIMAL(30,10) NULL,
		PRIMARY KEY (ledger, item_name),
		KEY idx_ledger_position (ledger, position)
	)`,
}

type MySQLAdapter struct {
	db     *sql.DB
	ledger string
}

func NewMySQLAdapter(db *sql.DB, ledger string) *MySQLAdapter {
	if ledger == "" {
		ledger = DefaultMySQLLedger
	}
	return &MySQLAdapter{db: db, ledger: ledger}
}

// EnsureSchema creates the snapshot tables when they are missing.
func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func (m *MySQLAdapter) Location() string {
	return "mysql:inventory_items/" + m.ledger
}

func (m *MySQLAdapter) SaveSnapshot(ctx context.Context, items []domain.Item) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO inventory_snapshots (ledger, version, saved_at)
		VALUES (?, 1, UTC_TIMESTAMP(6))
		ON DUPLICATE KEY UPDATE version = version + 1, saved_at = UTC_TIMESTAMP(6)`,
		m.ledger,
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM inventory_items WHERE ledger = ?`, m.ledger); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}

	if len(items) > 0 {
		placeholders := make([]string, 0, len(items))
		args := make([]interface{}, 0, 4*len(items))
		for i, it := range items {
			placeholders = append(placeholders, "(?, ?, ?, ?)")
			args = append(args, m.ledger, it.Name, i, it.Quantity.String())
		}
		query := `INSERT INTO inventory_items (ledger, item_name, position, quantity) VALUES ` +
			strings.Join(placeholders, ", ")
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	var version int64
	err := m.db.QueryRowContext(ctx,
		`SELECT version FROM inventory_snapshots WHERE ledger = ?`, m.ledger,
	).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ledger %s: %w", m.ledger, port.ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT item_name, quantity
		FROM inventory_items WHERE ledger = ?
		ORDER BY position`, m.ledger,
	)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	snap := &domain.Snapshot{}
	for rows.Next() {
		var (
			name string
			raw  sql.NullString
		)
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if !raw.Valid {
			snap.Skip(name, "NULL", domain.ErrNonNumericQuantity)
			continue
		}
		qty, err := decimal.NewFromString(raw.String)
		if err != nil {
			snap.Skip(name, raw.String, domain.ErrNonNumericQuantity)
			continue
		}
		snap.Accept(name, qty)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return snap, nil
}
