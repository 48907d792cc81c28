package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [item] [quantity]",
		Short: "Add stock for an item and save the snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			a.load(cmd.Context())
			if err := a.inventory.AddItem(args[0], qty, nil); err != nil {
				return err
			}
			a.save(cmd.Context())
			return nil
		},
	}
}

func (a *app) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [item] [quantity]",
		Short: "Remove stock for an item and save the snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			a.load(cmd.Context())
			if err := a.inventory.RemoveItem(args[0], qty); err != nil {
				return err
			}
			a.save(cmd.Context())
			return nil
		},
	}
}

func (a *app) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [item]",
		Short: "Print the quantity of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.load(cmd.Context())
			qty, err := a.inventory.Quantity(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), qty.String())
			return nil
		},
	}
}

func (a *app) newLowCmd() *cobra.Command {
	var threshold string
	cmd := &cobra.Command{
		Use:   "low",
		Short: "List items below the low-stock threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := a.lowStockThreshold()
			if threshold != "" {
				parsed, err := decimal.NewFromString(threshold)
				if err != nil {
					return fmt.Errorf("threshold must be numeric: %w", err)
				}
				limit = parsed
			}
			a.load(cmd.Context())
			for _, name := range a.inventory.LowItems(limit) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&threshold, "threshold", "", "Threshold (default from config)")
	return cmd
}

func (a *app) newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Log one line per item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.load(cmd.Context())
			a.inventory.PrintReport()
			return nil
		},
	}
}

func parseQuantity(raw string) (decimal.Decimal, error) {
	qty, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("quantity must be numeric, got %q", raw)
	}
	return qty, nil
}
