package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Brownie44l1/http-server/internal/files"
	"github.com/Brownie44l1/http-server/internal/handlers"
	"github.com/Brownie44l1/http-server/internal/router"
	"github.com/Brownie44l1/http-server/internal/server"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	config, level, err := parseFlags(args)
	if err != nil {
		return err
	}

	logger := server.NewDefaultLogger(os.Stdout, level)

	r := router.New()
	r.Use(server.RecoveryMiddleware(logger), server.LoggingMiddleware(logger))
	handlers.Register(r, files.New(config.Directory, config.RejectTraversal))

	srv := server.New(config, r)
	srv.Logger = logger

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			server.Field{Key: "addr", Value: config.Addr},
			server.Field{Key: "directory", Value: config.Directory},
		)
		errCh <- srv.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("shutting down", server.Field{Key: "signal", Value: sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, server.ErrServerClosed) {
		return err
	}

	logger.Info("server stopped")
	return nil
}

// parseFlags builds the process configuration once. --directory defaults to
// the current working directory.
func parseFlags(args []string) (server.Config, server.Level, error) {
	config := server.DefaultConfig()

	fs := flag.NewFlagSet("httpserver", flag.ContinueOnError)
	fs.StringVar(&config.Addr, "addr", config.Addr, "address to listen on")
	fs.StringVar(&config.Directory, "directory", config.Directory, "base directory for /files routes")
	fs.BoolVar(&config.RejectTraversal, "reject-traversal", config.RejectTraversal, "refuse file names containing .. or absolute paths")
	fs.Int64Var(&config.MaxRequestBodySize, "max-body-bytes", config.MaxRequestBodySize, "largest accepted request body")
	fs.DurationVar(&config.ReadTimeout, "read-timeout", config.ReadTimeout, "per-connection read deadline (0 disables)")
	fs.DurationVar(&config.WriteTimeout, "write-timeout", config.WriteTimeout, "per-connection write deadline (0 disables)")
	logLevel := fs.String("log-level", "info", "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return config, server.LevelInfo, err
	}

	level, err := server.ParseLevel(*logLevel)
	if err != nil {
		return config, server.LevelInfo, err
	}

	info, err := os.Stat(config.Directory)
	if err != nil {
		return config, level, fmt.Errorf("directory: %w", err)
	}
	if !info.IsDir() {
		return config, level, fmt.Errorf("directory: %s is not a directory", config.Directory)
	}

	return config, level, nil
}
