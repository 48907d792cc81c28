package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/rl1809/inventory-ledger/internal/adapter/handler"
)

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the inventory over HTTP and gRPC",
		Long: `Loads the snapshot, serves the HTTP and gRPC APIs and saves the
snapshot again on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.load(ctx)

	threshold := a.lowStockThreshold()

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(handler.UnaryLoggingInterceptor(a.logger)))
	handler.RegisterInventoryServer(grpcServer, handler.NewGRPCHandler(a.inventory, threshold))

	lis, err := net.Listen("tcp", a.cfg.Server.GRPCAddr)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    a.cfg.Server.HTTPAddr,
		Handler: handler.NewHTTPHandler(a.inventory, threshold, a.logger).Routes(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("gRPC server listening", zap.String("addr", a.cfg.Server.GRPCAddr))
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		a.logger.Info("HTTP server listening", zap.String("addr", a.cfg.Server.HTTPAddr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GetShutdownTimeout())
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("HTTP shutdown", zap.Error(err))
		}
		a.logger.Info("HTTP server stopped")

		grpcServer.GracefulStop()
		a.logger.Info("gRPC server stopped")
		return nil
	})

	err = g.Wait()
	a.save(context.Background())
	return err
}
