// Package cmd contains the CLI entry points for the infosetu binary.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/anvidev01/infosetu/internal/config"
	"github.com/anvidev01/infosetu/internal/log"
)

// Version information (injected at build time via ldflags).
var (
	AppVersion = "0.1.0"
	BuildTime  = "unknown"
	GitCommit  = "unknown"
)

// Execute is the main entry point. It routes subcommands, leaving main.go
// as a minimal shim.
//
// Commands:
//
//	serve    start the HTTP API server (default)
//	index    seed the knowledge store with the scheme corpus
//	ask      answer one question from the command line
//	version  print version and configuration summary
func Execute() error {
	// version and help work even when the configuration is broken.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			return runVersion()
		case "help", "--help", "-h":
			printHelp()
			return nil
		}
	}

	logger := initLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	command := "serve"
	args := []string{}
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	switch command {
	case "serve":
		return runServe(ctx, cfg, logger)
	case "index":
		return runIndex(ctx, cfg, logger)
	case "ask":
		return runAsk(ctx, cfg, logger, args)
	default:
		printHelp()
		return fmt.Errorf("unknown command: %q", command)
	}
}

// initLogger builds the process logger. DEBUG in the environment lowers the
// level; INFOSETU_LOG_JSON switches to JSON lines for log shippers.
func initLogger() log.Logger {
	cfg := log.Config{Level: slog.LevelInfo}
	if os.Getenv("DEBUG") != "" {
		cfg.Level = slog.LevelDebug
	}
	if os.Getenv("INFOSETU_LOG_JSON") != "" {
		cfg.JSON = true
	}
	return log.New(cfg)
}

func printHelp() {
	fmt.Println("InfoSetu - government services assistant")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  infosetu [command]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve      Start the HTTP API server (default)")
	fmt.Println("  index      Seed the knowledge store with the scheme corpus")
	fmt.Println("  ask        Answer one question from the command line")
	fmt.Println("  version    Show version information")
	fmt.Println("  help       Show this help")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  GEMINI_API_KEY     Gemini credentials (falls back to local ollama when unset)")
	fmt.Println("  SEARCH_API_KEY     Web search provider key (fallback search disabled when unset)")
	fmt.Println("  DEBUG              Enable debug logging")
}
