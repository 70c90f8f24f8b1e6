package main

import (
	"fmt"
	"strings"

	"github.com/shahar-caura/evadvisor/internal/advisor"
	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <question...>",
		Short: "Print the topic a question is matched to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := advisor.Classify(strings.Join(args, " "))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), c)
			return err
		},
	}
}
