package main

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
)

// runDemo exercises every inventory operation once.
func (a *app) runDemo(ctx context.Context) error {
	if err := a.demoMutations(); err != nil {
		if !domain.IsMutationError(err) {
			return err
		}
		a.logger.Error("Operation failed", zap.Error(err))
	}

	apple, err := a.inventory.Quantity("apple")
	if err != nil {
		return err
	}
	a.logger.Info("Apple stock", zap.String("quantity", apple.String()))
	a.logger.Info("Low items", zap.Strings("items", a.inventory.LowItems(a.lowStockThreshold())))

	a.save(ctx)
	a.load(ctx)
	a.inventory.PrintReport()
	return nil
}

func (a *app) demoMutations() error {
	if err := a.inventory.AddItem("apple", decimal.NewFromInt(10), nil); err != nil {
		return err
	}
	if err := a.inventory.AddItem("banana", decimal.NewFromInt(2), nil); err != nil {
		return err
	}
	return a.inventory.RemoveItem("apple", decimal.NewFromInt(3))
}

func (a *app) save(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.GetSnapshotTimeout())
	defer cancel()
	a.inventory.Save(ctx)
}

func (a *app) load(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.GetSnapshotTimeout())
	defer cancel()
	a.inventory.Load(ctx)
}
