package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shahar-caura/evadvisor/internal/format"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for configuration when --config is not given.
const DefaultPath = "advisor.yaml"

// Duration wraps time.Duration with YAML unmarshaling from strings like "600ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// Config is the top-level advisor configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Scenarios ScenariosConfig `yaml:"scenarios"`
	Chat      ChatConfig      `yaml:"chat"`
	Format    FormatConfig    `yaml:"format"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type ScenariosConfig struct {
	Dir     string `yaml:"dir"`
	Default string `yaml:"default"` // scenario used when a command names none
}

// ChatConfig controls the interactive REPL.
type ChatConfig struct {
	ThinkDelay *Duration `yaml:"think_delay"` // pause before each reply; nil means default, 0 disables
	WordWrap   int       `yaml:"word_wrap"`
}

type FormatConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
	Grouping       string `yaml:"grouping"` // "indian" or "western"
}

const (
	defaultPort       = 8080
	defaultDir        = ".advisor/scenarios"
	defaultThinkDelay = 600 * time.Millisecond
	defaultWordWrap   = 80
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands env vars, parses, and validates an advisor config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Scenarios.Dir == "" {
		cfg.Scenarios.Dir = defaultDir
	}
	if cfg.Chat.ThinkDelay == nil {
		cfg.Chat.ThinkDelay = &Duration{defaultThinkDelay}
	}
	if cfg.Chat.WordWrap == 0 {
		cfg.Chat.WordWrap = defaultWordWrap
	}
	if cfg.Format.CurrencySymbol == "" {
		cfg.Format.CurrencySymbol = format.Default.Symbol
	}
	if cfg.Format.Grouping == "" {
		cfg.Format.Grouping = string(format.Default.Grouping)
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port))
	}
	if cfg.Chat.ThinkDelay.Duration < 0 {
		errs = append(errs, errors.New("chat.think_delay must not be negative"))
	}
	if cfg.Chat.WordWrap < 0 {
		errs = append(errs, errors.New("chat.word_wrap must not be negative"))
	}
	if _, err := format.ParseGrouping(cfg.Format.Grouping); err != nil {
		errs = append(errs, fmt.Errorf("format.grouping: %w", err))
	}
	if strings.ContainsAny(cfg.Scenarios.Default, "/\\.") {
		errs = append(errs, fmt.Errorf("scenarios.default %q is not a valid scenario id", cfg.Scenarios.Default))
	}

	return errors.Join(errs...)
}

// Locale returns the formatting locale described by the config.
func (c *Config) Locale() format.Locale {
	g, err := format.ParseGrouping(c.Format.Grouping)
	if err != nil {
		g = format.Default.Grouping
	}
	return format.Locale{Symbol: c.Format.CurrencySymbol, Grouping: g}
}
