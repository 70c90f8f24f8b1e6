package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/olekukonko/tablewriter"
	"github.com/shahar-caura/evadvisor/internal/advisor"
	"github.com/shahar-caura/evadvisor/internal/scenario"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newScenariosCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scenarios",
		Aliases: []string{"sc"},
		Short:   "Manage the scenario library",
	}

	cmd.AddCommand(
		newScenariosListCmd(),
		newScenariosShowCmd(),
		newScenariosAddCmd(logger),
		newScenariosRmCmd(logger),
	)
	return cmd
}

func newScenariosListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			list, err := scenario.List()
			if err != nil {
				return fmt.Errorf("listing scenarios: %w", err)
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
				return nil
			}

			locale := cfg.Locale()
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Title", "Verdict", "Savings", "Break-even", "Updated"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)

			for _, s := range list {
				verdict := "ICE"
				if s.Metrics.Recommended() {
					verdict = "EV"
				}
				breakEven, ok := s.Metrics.BreakEvenText()
				if !ok {
					breakEven = "-"
				}
				table.Append([]string{
					s.ID,
					s.Title,
					verdict,
					locale.Currency(s.Metrics.SavingsOrZero()),
					breakEven,
					s.UpdatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			table.Render()
			return nil
		},
	}
}

func newScenariosShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a scenario and its summary",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completeScenarioIDs(toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			s, err := scenario.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading scenario: %w", err)
			}

			metrics, err := yaml.Marshal(s.Metrics)
			if err != nil {
				return fmt.Errorf("marshaling metrics: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:       %s\n", s.ID)
			fmt.Fprintf(out, "Title:    %s\n", s.Title)
			fmt.Fprintf(out, "Created:  %s\n", s.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Updated:  %s\n", s.UpdatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintln(out)
			fmt.Fprint(out, string(metrics))
			fmt.Fprintln(out)
			fmt.Fprintln(out, newAdvisor(cfg).Render(advisor.Fallback, s.Metrics))
			return nil
		},
	}
}

func newScenariosAddCmd(logger *slog.Logger) *cobra.Command {
	var title, file, id string
	var force bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a scenario from a metrics file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			if id == "" {
				id = scenario.SlugFromTitle(title)
			}
			if !scenario.ValidID(id) {
				return fmt.Errorf("%w: %q", scenario.ErrInvalidID, id)
			}

			_, err := scenario.Load(id)
			switch {
			case err == nil && !force:
				return fmt.Errorf("scenario %q already exists (use --force to replace)", id)
			case err != nil && !errors.Is(err, scenario.ErrNotFound):
				logger.Warn("replacing unreadable scenario", "id", id, "error", err)
			}

			metrics, err := scenario.LoadMetricsFile(file)
			if err != nil {
				return err
			}

			s := scenario.New(id, title, metrics)
			if err := s.Save(); err != nil {
				return fmt.Errorf("saving scenario: %w", err)
			}

			logger.Info("scenario saved", "id", id, "dir", scenario.Dir())
			fmt.Fprintf(cmd.OutOrStdout(), "Added scenario %q\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "scenario title")
	cmd.Flags().StringVar(&file, "file", "", "metrics file (YAML or JSON)")
	cmd.Flags().StringVar(&id, "id", "", "scenario id (default: derived from the title)")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing scenario")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newScenariosRmCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a scenario",
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completeScenarioIDs(toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}
			if err := scenario.Delete(args[0]); err != nil {
				return fmt.Errorf("deleting scenario: %w", err)
			}
			logger.Info("scenario deleted", "id", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Removed scenario %q\n", args[0])
			return nil
		},
	}
}
