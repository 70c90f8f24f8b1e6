package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shahar-caura/evadvisor/internal/advisor"
	"github.com/shahar-caura/evadvisor/internal/scenario"
	"github.com/spf13/cobra"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

func newChatCmd(logger *slog.Logger) *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Ask questions about a scenario interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			metrics, source, err := resolveMetrics(cfg, opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			s := &chatSession{
				in:      cmd.InOrStdin(),
				out:     cmd.OutOrStdout(),
				advisor: newAdvisor(cfg),
				metrics: metrics,
				delay:   cfg.Chat.ThinkDelay.Duration,
				printer: newReplyPrinter(cmd.OutOrStdout(), opts.plain, cfg.Chat.WordWrap),
				logger:  logger,
			}
			logger.Debug("starting chat", "scenario", source)
			return s.run(ctx)
		},
	}

	opts.bind(cmd)
	return cmd
}

// chatSession is a line-oriented REPL over one scenario snapshot.
type chatSession struct {
	in      io.Reader
	out     io.Writer
	advisor *advisor.Advisor
	metrics scenario.ScenarioContext
	delay   time.Duration
	printer *replyPrinter
	logger  *slog.Logger
}

func (s *chatSession) run(ctx context.Context) error {
	s.greet()

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, promptStyle.Render("you> "))
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if err := s.think(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}

		reply := s.advisor.Reply(line, s.metrics)
		s.logger.Debug("answered query", "category", reply.Category)
		if err := s.printer.print(reply.Text); err != nil {
			return err
		}
	}
}

func (s *chatSession) greet() {
	fmt.Fprintln(s.out, titleStyle.Render("Scenario Advisor"))
	fmt.Fprintln(s.out, advisor.Greeting)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, hintStyle.Render("Try asking:"))
	for _, q := range advisor.SuggestedQuestions {
		fmt.Fprintln(s.out, hintStyle.Render("  • "+q))
	}
	fmt.Fprintln(s.out, hintStyle.Render(`Type "exit" to leave.`))
	fmt.Fprintln(s.out)
}

// think pauses before a reply so the exchange reads like a conversation.
func (s *chatSession) think(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	fmt.Fprintln(s.out, hintStyle.Render("thinking..."))

	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
