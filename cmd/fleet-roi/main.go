package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/oceanworks/fleet-roi/internal/config"
	"github.com/oceanworks/fleet-roi/internal/roi"
	"github.com/oceanworks/fleet-roi/internal/server"
	"github.com/oceanworks/fleet-roi/pkg/constants"
	"github.com/oceanworks/fleet-roi/pkg/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "run the web dashboard instead of a one-shot calculation")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	if *serve {
		runServer(*serverConfigLocation, *logLevel)
		return
	}

	// Load the config file to get fleet parameters and logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}
	switch outputFormat {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
	default:
		logger.Fatal(fmt.Sprintf("invalid output format %s, must be one of: pretty, csv, json", outputFormat),
			zap.String("op", "main"),
		)
	}

	// Display any configuration warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Validate the engine inputs before computing; all-or-nothing.
	fleet := conf.Fleet
	selections := conf.Selections()
	if err := roi.ValidateInputs(fleet, selections); err != nil {
		logger.Fatal("invalid inputs",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Compute the metrics.
	engine := roi.NewEngine(logger)
	result := engine.ComputeMetrics(fleet, selections, conf.ThreeYearView)

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(result)
	case constants.OutputFormatCSV:
		output.CsvFormat(result)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(result); err != nil {
			logger.Fatal("failed to encode metrics",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}

func runServer(serverConfigLocation, logLevel string) {
	serverConf, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", serverConfigLocation, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(serverConf.Logging, logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	httpServer := &http.Server{
		Addr:    serverConf.Address,
		Handler: server.NewHandler(logger, serverConf.BodySizeBytes(), version),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("dashboard listening",
			zap.String("op", "main"),
			zap.String("address", serverConf.Address),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error",
				zap.String("op", "main"),
				zap.Error(err),
			)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
