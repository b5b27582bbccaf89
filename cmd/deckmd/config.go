package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/deckmd/internal/adapters/secondary/config"
	"github.com/fredcamaral/deckmd/internal/domain/entities"
	"github.com/fredcamaral/deckmd/pkg/logger"
)

// loadConfig resolves the effective configuration for a command with
// precedence: CLI flags > local config > global config > defaults.
func loadConfig(cmd *cobra.Command, sourceDir string, flags map[string]interface{}) (*entities.Config, error) {
	ctx := cmd.Context()

	var loader *config.TOMLLoader
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loader = config.NewTOMLLoaderWithPath(path)
	} else {
		loader = config.NewTOMLLoader()
	}

	globalConfig, err := loader.LoadGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	localConfig, err := loader.LoadLocal(ctx, sourceDir)
	if err != nil {
		return nil, fmt.Errorf("loading local config: %w", err)
	}

	merger := config.NewMerger()
	cfg := merger.Merge(config.GetDefaultConfig(), globalConfig, localConfig)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		flags["verbose"] = true
	}
	cfg = merger.ApplyFlags(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// newLogger builds the tool logger from the logging configuration
func newLogger(cfg *entities.Config) (logger.Logger, error) {
	opts := []logger.Option{
		logger.WithLevel(string(cfg.Logging.GetLevel())),
		logger.WithJSON(cfg.Logging.JSONFormat),
	}
	if cfg.Logging.File != "" {
		opts = append(opts, logger.WithFile(cfg.Logging.File))
	}
	return logger.New(opts...)
}

// destinationFor picks the markdown destination: an explicit path wins,
// then the configured output directory, then the engine default next to
// the source.
func destinationFor(cfg *entities.Config, sourcePath, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if cfg.Output.Dir != "" {
		base := filepath.Base(sourcePath)
		name := strings.TrimSuffix(base, filepath.Ext(base)) + entities.MarkupExtension
		return filepath.Join(cfg.Output.Dir, name)
	}
	return ""
}
