package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inkwell-ide/inkwell/internal/api"
	"github.com/inkwell-ide/inkwell/internal/backend"
	"github.com/inkwell-ide/inkwell/internal/daemon"
	"github.com/inkwell-ide/inkwell/internal/dispatch"
	"github.com/inkwell-ide/inkwell/internal/prefs"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the preference daemon (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve preferences over MCP on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCP()
	},
}

// openBackend builds the configured backend with the compiled flag defaults
// recorded.
func openBackend(cfg daemon.Config) (backend.Backend, func() error, error) {
	defaults := prefs.DefaultStrings(prefs.DefaultFlags())

	switch cfg.Store {
	case "file":
		return backend.NewFile(backend.DefaultPath(), defaults), func() error { return nil }, nil
	default:
		store, err := backend.Open(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening preference store: %w", err)
		}
		if err := store.SeedDefaults(defaults); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("recording defaults: %w", err)
		}
		return store, store.Close, nil
	}
}

func runServe() error {
	cfg, err := daemon.Load()
	if err != nil {
		return err
	}

	instance := uuid.New().String()
	logger := slog.Default().With("instance", instance)

	b, closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop := dispatch.NewLoop()
	mgr := prefs.New(b, loop, prefs.Options{
		RecentCapacity: cfg.RecentCapacity,
	})

	handler := api.NewHandler(api.Deps{
		Prefs:    mgr,
		UI:       loop,
		Instance: instance,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		loop.Run(ctx)
		return nil
	})

	g.Go(func() error {
		logger.Info("preference daemon listening", "addr", addr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func runMCP() error {
	cfg, err := daemon.Load()
	if err != nil {
		return err
	}

	b, closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop := dispatch.NewLoop()
	mgr := prefs.New(b, loop, prefs.Options{
		RecentCapacity: cfg.RecentCapacity,
	})

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(ctx)
	}()
	defer func() {
		stop()
		<-loopDone
	}()

	mcpSrv := api.NewMCPServer(api.Deps{Prefs: mgr, UI: loop}, version)
	stdioSrv := server.NewStdioServer(mcpSrv)
	return stdioSrv.Listen(ctx, os.Stdin, os.Stdout)
}
