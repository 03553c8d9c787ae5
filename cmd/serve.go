package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/desertthunder/reel/internal/server"
	"github.com/desertthunder/reel/internal/shared"
	"github.com/desertthunder/reel/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the library REST API and landing page until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	library, err := r.requireLibrary()
	if err != nil {
		return err
	}

	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := int(cmd.Int("port"))
	if port == 0 {
		port = r.config.Server.Port
	}

	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	if r.config.Server.AuthToken != "" {
		router.Use(server.BearerAuth(r.config.Server.AuthToken))
	}
	router.Handler(server.NewLibraryHandler(library, r.logger))

	index, err := web.NewIndexHandler(library, r.logger)
	if err != nil {
		return fmt.Errorf("failed to build landing page: %w", err)
	}
	router.Handler(index)

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	srv := &http.Server{Addr: addr, Handler: router}

	r.logger.Info("starting library server", "addr", addr, "backend", library.Name())
	r.writePlain("Serving %s library on http://%s\n", library.Name(), addr)

	if cmd.Bool("open") {
		go func() {
			if err := shared.OpenBrowser("http://" + addr); err != nil {
				r.logger.Warn("failed to open browser", "error", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		r.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
