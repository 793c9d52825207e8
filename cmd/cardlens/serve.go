package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/cardlens/internal/insights"
	"github.com/Veraticus/cardlens/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the raw datasets and insights over HTTP",
		Long: `Expose GET /api/financial-data and GET /api/insights. Each request loads
from the configured source and recomputes insights, so responses always
reflect the current data.`,
		RunE: runServe,
	}

	// Flags
	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().StringP("source", "s", "", "data source (local, remote, cache; default from config)")

	// Bind to viper
	_ = viper.BindPFlag("serve.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("serve.source", cmd.Flags().Lookup("source"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	source, cleanup, err := initSource(ctx, viper.GetString("serve.source"))
	if err != nil {
		return err
	}
	defer cleanup()

	analyzer := insights.NewAnalyzer(analysisConfig())
	srv := server.New(source, analyzer, time.Now)

	addr := viper.GetString("serve.addr")
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", addr, "source", source.Name())
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}
