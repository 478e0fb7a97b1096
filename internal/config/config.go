package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeCLI = "cli"
	ModeMCP = "mcp"

	// Default values
	DefaultOutputPath  = "extracted_content.json"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
)

// Config holds all configuration for the structured PDF parser
type Config struct {
	// Execution mode: "cli" parses one file and exits, "mcp" serves the
	// parser as MCP tools over stdio
	Mode string

	// CLI mode: input PDF path (positional) and output JSON path
	InputPath  string
	OutputPath string

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:        ModeCLI,
		OutputPath:  DefaultOutputPath,
		Version:     "1.0.0",
		ServerName:  "pdfstruct",
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// The input file is the single positional argument in cli mode
	if args := pflag.Args(); len(args) > 0 {
		cfg.InputPath = args[0]
	}

	// Expand paths if needed
	if cfg.InputPath != "" {
		if expandedPath, err := filepath.Abs(cfg.InputPath); err == nil {
			cfg.InputPath = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("PDFSTRUCT")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("output", cfg.OutputPath)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Execution mode: 'cli' to parse one file, 'mcp' to serve tools over stdio")
	pflag.StringP("output", "o", cfg.OutputPath, "Output JSON file path")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\npdfstruct - Parse a PDF and extract structured content to JSON\n\n")
		fmt.Fprintf(os.Stderr, "  %s [options] <input.pdf>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s report.pdf                # parse to extracted_content.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -o out.json report.pdf    # parse to a custom output path\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=mcp                # serve the parser as MCP tools\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PDFSTRUCT_MODE        Execution mode\n")
		fmt.Fprintf(os.Stderr, "  PDFSTRUCT_OUTPUT      Output JSON path\n")
		fmt.Fprintf(os.Stderr, "  PDFSTRUCT_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  PDFSTRUCT_MAXFILESIZE Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.OutputPath = viper.GetString("output")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeCLI && c.Mode != ModeMCP {
		return errors.New("mode must be either 'cli' or 'mcp'")
	}

	// CLI mode needs an input file
	if c.Mode == ModeCLI && c.InputPath == "" {
		return errors.New("input PDF path is required in cli mode")
	}

	// Validate output path
	if c.OutputPath == "" {
		return errors.New("output path cannot be empty")
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, InputPath: %s, OutputPath: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.InputPath, c.OutputPath, c.LogLevel, c.MaxFileSize)
}

// IsCLIMode returns true when running as a one-shot command line parser
func (c *Config) IsCLIMode() bool {
	return c.Mode == ModeCLI
}

// IsMCPMode returns true when serving the parser as MCP tools over stdio
func (c *Config) IsMCPMode() bool {
	return c.Mode == ModeMCP
}
