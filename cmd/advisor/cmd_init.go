package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/shahar-caura/evadvisor/internal/config"
	"github.com/shahar-caura/evadvisor/internal/scenario"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInitCmd(logger *slog.Logger) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default advisor.yaml and a sample scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath
			if f := cmd.Flag("config"); f != nil {
				path = f.Value.String()
			}
			return cmdInit(cmd, logger, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}

func cmdInit(cmd *cobra.Command, logger *slog.Logger, path string, force bool) error {
	// Overwrite guard.
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.Default()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)

	scenario.SetDir(cfg.Scenarios.Dir)
	sample := scenario.Sample()

	_, err = scenario.Load(sample.ID)
	switch {
	case err == nil && !force:
		logger.Info("sample scenario already present", "id", sample.ID)
		return nil
	case err != nil && !errors.Is(err, scenario.ErrNotFound):
		logger.Warn("replacing unreadable sample scenario", "id", sample.ID, "error", err)
	}

	if err := sample.Save(); err != nil {
		return fmt.Errorf("saving sample scenario: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added sample scenario %q\n", sample.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "\nTry: advisor ask --scenario %s \"how does this affect my wallet?\"\n", sample.ID)
	return nil
}
