package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/shahar-caura/evadvisor/internal/advisor"
	"github.com/shahar-caura/evadvisor/internal/config"
	"github.com/shahar-caura/evadvisor/internal/scenario"
	"github.com/spf13/cobra"
)

var (
	errNoScenario        = errors.New("no scenario: pass --scenario or --file, or set scenarios.default in advisor.yaml")
	errAmbiguousScenario = errors.New("cannot specify both --scenario and --file")
)

// loadConfig reads the file named by --config and points the scenario library
// at the configured directory. An explicitly named file must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := config.DefaultPath
	explicit := false
	if f := cmd.Flag("config"); f != nil {
		path = f.Value.String()
		explicit = f.Changed
	}

	var cfg *config.Config
	var err error
	if explicit {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrDefault(path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	scenario.SetDir(cfg.Scenarios.Dir)
	return cfg, nil
}

func newAdvisor(cfg *config.Config) *advisor.Advisor {
	return advisor.New(advisor.WithLocale(cfg.Locale()))
}

// askOptions selects the snapshot a question is answered from.
type askOptions struct {
	scenarioID string
	file       string
	plain      bool
}

func (o *askOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.scenarioID, "scenario", "s", "", "scenario id from the library")
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "metrics file (YAML or JSON) to answer from")
	cmd.Flags().BoolVar(&o.plain, "plain", false, "print replies as raw markdown")

	_ = cmd.RegisterFlagCompletionFunc("scenario", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeScenarioIDs(toComplete)
	})
}

// resolveMetrics returns the snapshot selected by opts, falling back to the
// configured default scenario, plus a label naming where it came from.
func resolveMetrics(cfg *config.Config, opts askOptions) (scenario.ScenarioContext, string, error) {
	if opts.scenarioID != "" && opts.file != "" {
		return scenario.ScenarioContext{}, "", errAmbiguousScenario
	}

	if opts.file != "" {
		metrics, err := scenario.LoadMetricsFile(opts.file)
		if err != nil {
			return scenario.ScenarioContext{}, "", err
		}
		return metrics, opts.file, nil
	}

	id := opts.scenarioID
	if id == "" {
		id = cfg.Scenarios.Default
	}
	if id == "" {
		return scenario.ScenarioContext{}, "", errNoScenario
	}

	s, err := scenario.Load(id)
	if err != nil {
		return scenario.ScenarioContext{}, "", fmt.Errorf("loading scenario: %w", err)
	}
	return s.Metrics, s.ID, nil
}

// replyPrinter writes advisor replies either verbatim or as terminal markdown.
type replyPrinter struct {
	out      io.Writer
	renderer *glamour.TermRenderer
}

func newReplyPrinter(out io.Writer, plain bool, wordWrap int) *replyPrinter {
	p := &replyPrinter{out: out}
	if plain {
		return p
	}
	// Fall back to plain output if the renderer cannot be built.
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err == nil {
		p.renderer = r
	}
	return p
}

func (p *replyPrinter) print(text string) error {
	if p.renderer != nil {
		rendered, err := p.renderer.Render(text)
		if err == nil {
			_, err = io.WriteString(p.out, rendered)
			return err
		}
	}
	_, err := fmt.Fprintln(p.out, text)
	return err
}

// --- Dynamic completions ---

func completeScenarioIDs(toComplete string) ([]string, cobra.ShellCompDirective) {
	list, err := scenario.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var ids []string
	for _, s := range list {
		if strings.HasPrefix(s.ID, toComplete) {
			ids = append(ids, s.ID)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
