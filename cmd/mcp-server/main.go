package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roivaz/tcg-mcp/internal/config"
	"github.com/roivaz/tcg-mcp/internal/logging"
	"github.com/roivaz/tcg-mcp/internal/mcp"
)

func main() {
	root := &cobra.Command{
		Use:          "mcp-server",
		Short:        "Pokemon TCG card data and pricing MCP server",
		RunE:         run,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("transport", "stdio", "MCP transport: stdio or http")
	root.PersistentFlags().Int("port", 8000, "HTTP port")
	root.PersistentFlags().String("host", "0.0.0.0", "HTTP host")
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	root.PersistentFlags().String("env-file", ".env", "Path of the .env file to load")
	root.PersistentFlags().String("tcgdex-base-url", "https://api.tcgdex.net/v2", "TCGdex API base URL")
	root.PersistentFlags().String("tcgdex-language", "en", "TCGdex card language")
	root.PersistentFlags().String("justtcg-base-url", "https://api.justtcg.com/v1", "JustTCG API base URL")
	root.PersistentFlags().String("justtcg-api-key", "", "JustTCG API key; pricing tools are disabled without it")
	root.PersistentFlags().String("image-quality", "low", "Default image quality: low or high")
	root.PersistentFlags().String("image-format", "png", "Default image format: png, webp or jpg")
	root.PersistentFlags().Int("max-query-results", 50, "Maximum cards fetched per card query")

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.New(logging.NewLogr(config.LogLevel()))
	defer func() { _ = logger.Zap().Sync() }()

	srv := mcp.New(mcp.DefaultConfig(logger))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch transport := config.Transport(); transport {
	case "stdio":
		logger.Info("serving MCP over stdio", "tools", len(srv.Tools))
		err := srv.ServeStdio(ctx, logger.WithName("stdio"))
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	case "http":
		return serveHTTP(ctx, srv, logger)
	default:
		return fmt.Errorf("unknown transport %q: use stdio or http", transport)
	}
}

func serveHTTP(ctx context.Context, srv *mcp.Server, logger logging.Logger) error {
	addr := config.Host() + ":" + strconv.Itoa(config.Port())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("MCP server listening", "addr", addr, "endpoint", mcp.EndpointPath, "tools", len(srv.Tools))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
