package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(logger *slog.Logger) *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Answer one question about a scenario",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdAsk(cmd, logger, strings.Join(args, " "), opts)
		},
	}

	opts.bind(cmd)
	return cmd
}

func cmdAsk(cmd *cobra.Command, logger *slog.Logger, query string, opts askOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	metrics, source, err := resolveMetrics(cfg, opts)
	if err != nil {
		return err
	}

	reply := newAdvisor(cfg).Reply(query, metrics)
	logger.Debug("answered query", "category", reply.Category, "scenario", source)

	return newReplyPrinter(cmd.OutOrStdout(), opts.plain, cfg.Chat.WordWrap).print(reply.Text)
}
