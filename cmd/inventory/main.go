package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rl1809/inventory-ledger/internal/config"
	"github.com/rl1809/inventory-ledger/internal/core/service"
	"github.com/rl1809/inventory-ledger/internal/logging"
	"github.com/rl1809/inventory-ledger/internal/port"
)

// app carries what every subcommand needs once PersistentPreRunE has run.
type app struct {
	configPath string
	verbose    bool
	snapshot   string
	backend    string

	cfg       *config.Config
	logger    *zap.Logger
	snapshots port.SnapshotRepository
	inventory *service.InventoryService
	closers   []func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inventory ledger keyed by item name",
		Long: `inventory keeps item quantities, persists them as a snapshot
(a JSON file by default, or Redis/MySQL) and reports low stock.

Run without arguments to execute the demonstration routine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultConfigPath, "Path to the YAML configuration")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&a.snapshot, "file", "", "Snapshot file path (file backend)")
	rootCmd.PersistentFlags().StringVar(&a.backend, "backend", "", "Snapshot backend: file, redis or mysql")

	rootCmd.AddCommand(
		a.newAddCmd(),
		a.newRemoveCmd(),
		a.newGetCmd(),
		a.newLowCmd(),
		a.newReportCmd(),
		a.newServeCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.snapshot != "" {
		cfg.Snapshot.Path = a.snapshot
	}
	if a.backend != "" {
		cfg.Snapshot.Backend = a.backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}

	snapshots, closer, err := openSnapshotRepository(cmd.Context(), cfg.Snapshot)
	if err != nil {
		return err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	a.snapshots = snapshots
	a.inventory = service.NewInventoryService(snapshots, a.logger)
	return nil
}

func (a *app) teardown() {
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			a.logger.Warn("Failed to close snapshot backend", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) lowStockThreshold() decimal.Decimal {
	return decimal.NewFromFloat(a.cfg.Inventory.LowStockThreshold)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
