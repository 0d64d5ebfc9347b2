package cliapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	coreapp "docwatch/internal/app"
	"docwatch/internal/config"
	"docwatch/internal/observability"
	"docwatch/internal/report"
	"docwatch/internal/scaffold"
)

func Run(args []string) int {
	opts, err := parseOptions(args)
	if err != nil {
		return 2
	}

	if opts.version {
		fmt.Printf("docwatch v%s\n", versionString)
		return 0
	}

	configureLogging(opts.verbose)

	cfg, err := loadConfig(opts)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		return 2
	}
	if len(cfg.Pairs) == 0 {
		fmt.Fprintln(os.Stderr, "no file pairs: pass <code-file> <docs-file> or configure [[pairs]] in docwatch.toml")
		return 2
	}

	renderer := report.New(os.Stdout, opts.plain)
	app, err := coreapp.New(cfg, renderer)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Warn("failed to close history store", "error", err)
		}
	}()

	switch {
	case opts.baseline:
		if err := app.WriteBaseline(); err != nil {
			slog.Error("failed to write baseline", "error", err)
			return 1
		}
		return 0

	case opts.scaffold:
		return runScaffold(app, opts)

	case opts.watch:
		if opts.metricsAddr != "" {
			srv := observability.NewServer(opts.metricsAddr)
			srv.Start()
			defer srv.Stop(context.Background())
		}
		if _, err := app.Check(); err != nil {
			slog.Error("initial check failed", "error", err)
			return 1
		}
		w, err := app.Watch()
		if err != nil {
			slog.Error("failed to start watcher", "error", err)
			return 1
		}
		defer w.Close()
		select {}

	default:
		blocking, err := app.Check()
		if err != nil {
			slog.Error("check failed", "error", err)
			return 1
		}
		if blocking {
			return 1
		}
		return 0
	}
}

func runScaffold(app *coreapp.App, opts cliOptions) int {
	byPair, err := app.Suggestions()
	if err != nil {
		slog.Error("failed to collect suggestions", "error", err)
		return 1
	}

	total := 0
	for pair, suggestions := range byPair {
		if len(suggestions) == 0 {
			continue
		}
		n, err := scaffold.Apply(suggestions, scaffold.Options{Force: opts.force, DryRun: opts.dryRun}, os.Stdout)
		if err != nil {
			slog.Error("scaffold failed", "code", pair.Code, "error", err)
			return 1
		}
		total += n
	}

	if total == 0 {
		fmt.Println("no annotations to add")
	} else if opts.dryRun {
		fmt.Printf("%d annotation(s) would be added\n", total)
	} else {
		fmt.Printf("%d annotation(s) added\n", total)
	}
	return 0
}

func loadConfig(opts cliOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || opts.configPath != defaultConfigPath {
			return nil, err
		}
		cfg = config.Default()
	}

	// A positional pair overrides the configured ones.
	if len(opts.args) > 0 {
		if len(opts.args) != 2 {
			return nil, fmt.Errorf("expected <code-file> <docs-file>, got %d argument(s)", len(opts.args))
		}
		cfg.Pairs = []config.Pair{{Code: opts.args[0], Docs: opts.args[1]}}
	}
	return cfg, nil
}

func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}
