package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shahar-caura/evadvisor/internal/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
server:
  port: 9090
scenarios:
  dir: data/scenarios
  default: city-commute
chat:
  think_delay: 250ms
  word_wrap: 100
format:
  currency_symbol: "$"
  grouping: western
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "advisor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "data/scenarios", cfg.Scenarios.Dir)
	assert.Equal(t, "city-commute", cfg.Scenarios.Default)
	assert.Equal(t, 250*time.Millisecond, cfg.Chat.ThinkDelay.Duration)
	assert.Equal(t, 100, cfg.Chat.WordWrap)
	assert.Equal(t, format.Locale{Symbol: "$", Grouping: format.GroupingWestern}, cfg.Locale())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ".advisor/scenarios", cfg.Scenarios.Dir)
	assert.Empty(t, cfg.Scenarios.Default)
	assert.Equal(t, 600*time.Millisecond, cfg.Chat.ThinkDelay.Duration)
	assert.Equal(t, 80, cfg.Chat.WordWrap)
	assert.Equal(t, format.Default, cfg.Locale())
}

func TestLoad_ZeroThinkDelayDisablesPause(t *testing.T) {
	cfg, err := Load(writeConfig(t, "chat:\n  think_delay: 0s\n"))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.Chat.ThinkDelay.Duration)
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("ADVISOR_PORT", "7070")
	t.Setenv("ADVISOR_SYMBOL", "€")

	cfg, err := Load(writeConfig(t, `
server:
  port: ${ADVISOR_PORT}
format:
  currency_symbol: ${ADVISOR_SYMBOL}
`))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "€", cfg.Format.CurrencySymbol)
}

func TestLoad_InvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, `
server:
  port: 70000
chat:
  think_delay: -1s
  word_wrap: -5
format:
  grouping: swiss
scenarios:
  default: ../escape
`))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "chat.think_delay")
	assert.Contains(t, err.Error(), "chat.word_wrap")
	assert.Contains(t, err.Error(), "format.grouping")
	assert.Contains(t, err.Error(), "scenarios.default")
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := Load(writeConfig(t, "chat:\n  think_delay: soon\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOrDefault_InvalidFileStillErrors(t *testing.T) {
	_, err := LoadOrDefault(writeConfig(t, "server:\n  port: -1\n"))
	require.Error(t, err)
}
