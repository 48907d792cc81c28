package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
	"github.com/rl1809/inventory-ledger/internal/port"
)

const journalTimeLayout = "2006-01-02 15:04:05.000000"

var DefaultLowStockThreshold = decimal.NewFromInt(5)

// InventoryService owns one Stock and persists it through a SnapshotRepository.
// Every method is serialized, so the service can be shared by transports.
type InventoryService struct {
	mu        sync.Mutex
	stock     *domain.Stock
	snapshots port.SnapshotRepository
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*InventoryService)

// WithClock replaces time.Now for journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *InventoryService) {
		s.now = now
	}
}

func NewInventoryService(snapshots port.SnapshotRepository, logger *zap.Logger, opts ...Option) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &InventoryService{
		stock:     domain.NewStock(),
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem adds qty of item. The journal line goes to journal when it is not
// nil and to the info log otherwise.
func (s *InventoryService) AddItem(item string, qty decimal.Decimal, journal port.Journal) error {
	s.mu.Lock()
	_, err := s.stock.Add(item, qty)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	entry := fmt.Sprintf("%s: Added %s of %s", s.now().Format(journalTimeLayout), qty, item)
	if journal == nil {
		journal = loggerJournal{logger: s.logger}
	}
	journal.AppendLine(entry)
	return nil
}

func (s *InventoryService) RemoveItem(item string, qty decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.stock.Remove(item, qty)
	return err
}

// Quantity returns the stock of item, zero when it is absent.
func (s *InventoryService) Quantity(item string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stock.Quantity(item)
}

func (s *InventoryService) LowItems(threshold decimal.Decimal) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stock.LowItems(threshold)
}

func (s *InventoryService) Items() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stock.Items()
}

// Load replaces the inventory with the persisted snapshot. Failures are
// logged and leave the inventory as it was.
func (s *InventoryService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	location := s.snapshots.Location()
	snap, err := s.snapshots.LoadSnapshot(ctx)
	switch {
	case errors.Is(err, port.ErrSnapshotNotFound):
		s.logger.Info("Data file not found, starting with empty inventory", zap.String("location", location))
		return
	case errors.Is(err, port.ErrSnapshotNotObject):
		s.logger.Error("Loaded JSON is not an object, ignoring contents", zap.String("location", location))
		return
	case errors.Is(err, port.ErrMalformedSnapshot):
		s.logger.Error("JSON decode error while loading", zap.String("location", location), zap.Error(err))
		return
	case err != nil:
		s.logger.Error("Failed to load inventory", zap.String("location", location), zap.Error(err))
		return
	}

	for _, skipped := range snap.Skipped {
		s.logger.Warn("Skipping invalid entry",
			zap.String("key", skipped.Key),
			zap.String("value", skipped.Value),
			zap.NamedError("reason", skipped.Reason))
	}
	s.stock.Replace(snap.Items)
	s.logger.Debug("Inventory loaded", zap.String("location", location), zap.Int("items", s.stock.Len()))
}

// Save writes the inventory to the snapshot repository. A failed write is
// logged, never returned.
func (s *InventoryService) Save(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	location := s.snapshots.Location()
	if err := s.snapshots.SaveSnapshot(ctx, s.stock.Items()); err != nil {
		s.logger.Error("Error writing inventory", zap.String("location", location), zap.Error(err))
		return
	}
	s.logger.Info("Inventory saved", zap.String("location", location))
}

// PrintReport logs one line per item.
func (s *InventoryService) PrintReport() {
	items := s.Items()

	s.logger.Info("Items Report")
	if len(items) == 0 {
		s.logger.Info("  (no items in inventory)")
		return
	}
	for _, it := range items {
		s.logger.Info(fmt.Sprintf("  %s -> %s", it.Name, it.Quantity))
	}
}
