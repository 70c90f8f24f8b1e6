package main

import (
	"log/slog"
	"os"

	"github.com/shahar-caura/evadvisor/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

// logLevel is raised to debug by --verbose.
var logLevel = new(slog.LevelVar)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("advisor failed", "error", err)
		os.Exit(1)
	}
}

// loadEnv applies .advisor.env files before any command reads its config.
func loadEnv(logger *slog.Logger) {
	for _, f := range config.LoadEnvFiles() {
		if f.Err != nil {
			logger.Warn("ignoring env file", "path", f.Path, "error", f.Err)
			continue
		}
		logger.Debug("loaded env file", "path", f.Path, "keys", len(f.Keys))
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	var opts askOptions
	var verbose bool

	root := &cobra.Command{
		Use:   "advisor [question...]",
		Short: "Answer questions about an EV-vs-petrol ownership scenario",
		Long: `advisor answers free-text questions about an EV-vs-petrol comparison.

Questions are matched to a topic (savings, break-even, emissions) and answered
from a scenario snapshot. Anything that is not a subcommand is asked as a question:

  advisor when do I break even --scenario city-commute`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logLevel.Set(slog.LevelDebug)
			}
			loadEnv(logger)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBareQuestion(cmd, logger, args, opts)
		},
	}

	root.PersistentFlags().String("config", config.DefaultPath, "path to advisor config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	opts.bind(root)

	root.AddCommand(
		newAskCmd(logger),
		newClassifyCmd(),
		newChatCmd(logger),
		newScenariosCmd(logger),
		newServeCmd(logger),
		newInitCmd(logger),
		newCompletionCmd(),
		newVersionCmd(),
	)

	return root
}
