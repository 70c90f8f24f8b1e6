package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

// runBareQuestion treats arguments that are not a subcommand as a question,
// so "advisor when do I break even" behaves like "advisor ask when do I break even".
func runBareQuestion(cmd *cobra.Command, logger *slog.Logger, args []string, opts askOptions) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	query := strings.Join(args, " ")
	logger.Debug("treating arguments as a question", "query", query)

	return cmdAsk(cmd, logger, query, opts)
}
