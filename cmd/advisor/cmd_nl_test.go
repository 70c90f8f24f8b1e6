package main

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestRunBareQuestion_EmptyArgs(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	root := newRootCmd(logger)
	root.SetOut(io.Discard)

	// Empty args should print help, not error.
	err := runBareQuestion(root, logger, []string{}, askOptions{})
	if err != nil {
		t.Fatalf("expected no error for empty args, got: %v", err)
	}
}

func TestRootCmd_BareWordsAreAQuestion(t *testing.T) {
	inTempProject(t)
	file := writeFile(t, "metrics.yaml", highwayMetrics)

	out, err := execute(t, "when", "do", "I", "break", "even", "--file", file, "--plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Break-even Timeline") {
		t.Fatalf("expected break-even reply, got: %s", out)
	}
	if !strings.Contains(out, "**never**") {
		t.Fatalf("expected descriptive break-even value, got: %s", out)
	}
}

func TestRootCmd_BareQuestionNeedsScenario(t *testing.T) {
	inTempProject(t)

	_, err := execute(t, "is", "it", "green")
	if !errors.Is(err, errNoScenario) {
		t.Fatalf("expected errNoScenario, got: %v", err)
	}
}

func TestRootCmd_SubcommandWinsOverQuestion(t *testing.T) {
	out, err := execute(t, "classify", "is", "it", "green")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "environmental" {
		t.Fatalf("expected classify output, got: %q", out)
	}
}
