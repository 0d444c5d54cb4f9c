package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gamma-omg/stock-api/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, p, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			gin.SetMode(gin.ReleaseMode)
			srv := server.NewServer(log, p, cfg.Server, cfg.Symbols).HTTPServer(cfg.Server)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("server starting",
					slog.String("addr", srv.Addr),
					slog.String("provider", p.Name()))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down server: %w", err)
			}

			log.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}
