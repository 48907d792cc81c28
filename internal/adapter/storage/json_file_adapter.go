package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
	"github.com/rl1809/inventory-ledger/internal/port"
)

const DefaultSnapshotPath = "inventory.json"

// JSONFileAdapter stores the inventory as a single JSON object mapping item
// names to quantities.
type JSONFileAdapter struct {
	path string
}

func NewJSONFileAdapter(path string) *JSONFileAdapter {
	if path == "" {
		path = DefaultSnapshotPath
	}
	return &JSONFileAdapter{path: path}
}

func (a *JSONFileAdapter) Location() string {
	return a.path
}

func (a *JSONFileAdapter) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	data, err := os.ReadFile(a.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", a.path, port.ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", a.path, err)
	}

	// Validate the whole document before walking it so a syntax error never
	// yields a partial snapshot.
	var probe json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", port.ErrMalformedSnapshot, a.path, err)
	}
	if probe = bytes.TrimSpace(probe); len(probe) == 0 || probe[0] != '{' {
		return nil, fmt.Errorf("%s: %w", a.path, port.ErrSnapshotNotObject)
	}

	snap, err := decodeObject(probe)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", port.ErrMalformedSnapshot, a.path, err)
	}
	return snap, nil
}

func (a *JSONFileAdapter) SaveSnapshot(ctx context.Context, items []domain.Item) error {
	data, err := encodeObject(items)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(a.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", a.path, err)
	}
	return nil
}

func decodeObject(data []byte) (*domain.Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if !isJSONNumber(raw) {
			snap.Skip(key, string(raw), domain.ErrNonNumericQuantity)
			continue
		}
		qty, err := decimal.NewFromString(string(raw))
		if err != nil {
			snap.Skip(key, string(raw), domain.ErrNonNumericQuantity)
			continue
		}
		snap.Accept(key, qty)
	}
	return snap, nil
}

func isJSONNumber(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	c := raw[0]
	return c == '-' || (c >= '0' && c <= '9')
}

// encodeObject writes items as a 2-space indented object in slice order.
// Non-ASCII and HTML characters are kept verbatim.
func encodeObject(items []domain.Item) ([]byte, error) {
	if len(items) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, it := range items {
		key, err := marshalKey(it.Name)
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.WriteString(it.Quantity.String())
		if i < len(items)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func marshalKey(name string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(name); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
