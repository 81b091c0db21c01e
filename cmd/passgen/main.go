package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/handler"
	"github.com/vaultpass/passgen/internal/service"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	envErr := config.LoadEnv()

	cfg, err := config.Load(args)
	if errors.Is(err, config.ErrHelp) {
		fmt.Fprintln(stdout, cfg.Help)
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel()})))
	if envErr != nil {
		slog.Debug("no .env file loaded, using environment variables", "error", envErr)
	}

	if cfg.Verify != "" {
		verifyHandler := handler.NewVerifyHandler(service.NewVerifyService())
		return exitCode(verifyHandler.Handle(stdin, stdout, cfg.Verify), stderr)
	}

	genService := service.NewGeneratorService(&crypto.Generator{}, crypto.NewHasher())
	genHandler := handler.NewGeneratorHandler(genService)

	return exitCode(genHandler.Handle(ctx, stdout, cfg.Request(), cfg.Style()), stderr)
}

func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return exitOK
	case handler.IsValidationError(err):
		fmt.Fprintln(stderr, err)
		return exitUsage
	case errors.Is(err, service.ErrPasswordMismatch):
		fmt.Fprintln(stderr, err)
		return exitError
	default:
		slog.Error("passgen failed", "error", err)
		return exitError
	}
}
