package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"seasonfix/internal/config"
	"seasonfix/internal/logging"
	"seasonfix/internal/repair"
	"seasonfix/internal/runlock"
	"seasonfix/internal/services/tmdb"
)

// loadRunConfig loads the configuration and applies CLI overrides. Flags win
// over file and environment values.
func loadRunConfig(opts *rootOptions) (*config.Config, error) {
	cfg, _, _, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if path := strings.TrimSpace(opts.libraryPath); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return nil, fmt.Errorf("resolve library path: %w", err)
		}
		cfg.Paths.LibraryDir = expanded
	}

	bearer := strings.TrimSpace(opts.bearer)
	bearerFile := strings.TrimSpace(opts.bearerFile)
	if bearer != "" && bearerFile != "" {
		return nil, errors.New("only one of --bearer and --bearer-file may be given")
	}
	if bearer != "" {
		cfg.TMDB.BearerToken = bearer
	}
	if bearerFile != "" {
		expanded, err := config.ExpandPath(bearerFile)
		if err != nil {
			return nil, fmt.Errorf("resolve bearer file: %w", err)
		}
		token, err := os.ReadFile(expanded)
		if err != nil {
			return nil, fmt.Errorf("read bearer file %s: %w", expanded, err)
		}
		cfg.TMDB.BearerToken = strings.TrimSpace(string(token))
	}

	if level := strings.TrimSpace(opts.logLevel); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	if cfg.TMDB.BearerToken == "" {
		return nil, errors.New("a TMDB bearer token is required: use --bearer or --bearer-file, set tmdb.bearer_token in the config, or export TMDB_BEARER_TOKEN")
	}

	return cfg, nil
}

func runRepair(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadRunConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	info, err := os.Stat(cfg.Paths.LibraryDir)
	if err != nil {
		return fmt.Errorf("library path %s: %w", cfg.Paths.LibraryDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("library path %s is not a directory", cfg.Paths.LibraryDir)
	}

	release, err := runlock.Acquire(cfg.Paths.LibraryDir)
	if err != nil {
		return err
	}
	defer release()

	client, err := tmdb.New(cfg.TMDB.BearerToken, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := client.VerifyAuth(ctx); err != nil {
		return err
	}

	runner := repair.New(repair.Config{
		LibraryDir: cfg.Paths.LibraryDir,
		DryRun:     opts.dryRun,
	}, client, logger)

	summary, runErr := runner.Run(ctx)
	if summary != nil {
		writeSummary(cmd.OutOrStdout(), summary, opts.dryRun, stdoutIsTerminal())
	}
	return runErr
}
