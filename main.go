package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/iburimskiy/ambient-canvas/internal/config"
	"github.com/iburimskiy/ambient-canvas/internal/scene"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	modeName := flag.String("mode", "", "Initial mode: sun, rain, snow, night or off (empty = use config)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = use config, then time-based)")
	inTerminal := flag.Bool("term", false, "Render in the terminal instead of a window")
	tracePath := flag.String("trace", "", "Write a per-frame CSV trace to this path (empty = use config)")
	prefsPath := flag.String("prefs", "", "Preferences file (empty = use config, then the user config directory)")
	logJSON := flag.Bool("log-json", false, "Log JSON instead of text")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	logFile := flag.String("log-file", "", "Append logs to this file (empty = stderr, discarded with -term)")
	dumpConfig := flag.String("dump-config", "", "Write the effective config to this path and exit")

	flag.Parse()

	out, closeOut, err := logOutput(*logFile, *inTerminal)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeOut()

	logger, err := newLogger(out, *logJSON, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// CLI overrides
	if *modeName != "" {
		mode, err := scene.ParseMode(*modeName)
		if err != nil {
			logger.Error("invalid -mode", "error", err)
			os.Exit(1)
		}
		cfg.Scene.InitialMode = mode.String()
		cfg.Derived.Mode = mode
	}
	if *seed != 0 {
		cfg.Scene.Seed = *seed
	}
	if *tracePath != "" {
		cfg.Telemetry.TracePath = *tracePath
	}
	if *prefsPath != "" {
		cfg.Prefs.Path = *prefsPath
	}

	if *dumpConfig != "" {
		if err := cfg.WriteYAML(*dumpConfig); err != nil {
			logger.Error("failed to write config", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, *inTerminal, logger); err != nil {
		logger.Error("exited with error", "error", err)
		os.Exit(1)
	}
}

// logOutput picks where logs go. The terminal frontend owns the tty, so
// without a log file its logs are dropped.
func logOutput(path string, inTerminal bool) (io.Writer, func(), error) {
	if path == "" {
		if inTerminal {
			return io.Discard, func() {}, nil
		}
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func newLogger(w io.Writer, json bool, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
