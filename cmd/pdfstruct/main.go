package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/docstruct/pdfstruct/internal/config"
	"github.com/docstruct/pdfstruct/internal/mcp"
	"github.com/docstruct/pdfstruct/internal/parser"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the execution mode
func setupLogging(cfg *config.Config) {
	if cfg.IsMCPMode() {
		// In MCP mode, redirect log output to stderr to avoid interfering with the protocol
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// runCLIMode parses the input file once and writes the JSON result
func runCLIMode(ctx context.Context, cfg *config.Config) {
	session, err := parser.NewSession(cfg.InputPath, cfg.MaxFileSize)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}

	doc, err := session.Parse(ctx)
	if err != nil {
		log.Fatalf("Failed to parse PDF: %v", err)
	}

	if err := session.SaveJSON(doc, cfg.OutputPath); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	fmt.Printf("Processing done, output written to %s\n", cfg.OutputPath)
}

// runMCPMode serves the parser as MCP tools over stdio with signal handling
func runMCPMode(ctx context.Context, cancel context.CancelFunc, server *mcp.Server) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		cancel()

		if err := <-serverErrCh; err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && cfg.IsCLIMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsMCPMode() {
		server, err := mcp.NewServer(cfg)
		if err != nil {
			log.Fatalf("Failed to create MCP server: %v", err)
		}
		runMCPMode(ctx, cancel, server)
		return
	}

	runCLIMode(ctx, cfg)
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("pdfstruct\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
