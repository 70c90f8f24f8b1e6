// Package scenario holds the metrics snapshot the advisor answers from and
// the on-disk library of named scenarios.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var dir = ".advisor/scenarios"

// SetDir overrides the default scenario library directory.
func SetDir(d string) { dir = d }

// Dir returns the scenario library directory.
func Dir() string { return dir }

var (
	// ErrNotFound indicates no scenario file exists for the requested ID.
	ErrNotFound = errors.New("scenario not found")

	// ErrInvalidID indicates an ID that cannot name a file inside the library.
	ErrInvalidID = errors.New("invalid scenario id")
)

// Scenario is a named, persisted snapshot.
type Scenario struct {
	ID        string          `yaml:"id" json:"id"`
	Title     string          `yaml:"title" json:"title"`
	CreatedAt time.Time       `yaml:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `yaml:"updated_at" json:"updatedAt"`
	Metrics   ScenarioContext `yaml:"metrics" json:"metrics"`
}

// New creates a Scenario stamped with the current time.
func New(id, title string, metrics ScenarioContext) *Scenario {
	now := time.Now()
	return &Scenario{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Metrics:   metrics,
	}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// SlugFromTitle converts a title into a lowercase, hyphen-separated ID.
func SlugFromTitle(title string) string {
	s := strings.ToLower(title)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "unnamed"
	}
	return s
}

// ValidID reports whether id is safe to use as a file name in the library.
func ValidID(id string) bool {
	return id != "" && !strings.ContainsAny(id, "/\\.")
}

func path(id string) (string, error) {
	if !ValidID(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(dir, id+".yaml"), nil
}

// Load reads a Scenario from <dir>/<id>.yaml.
func Load(id string) (*Scenario, error) {
	p, err := path(id)
	if err != nil {
		return nil, err
	}
	s, err := LoadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, err
}

// LoadFile reads a Scenario from an arbitrary file path.
func LoadFile(p string) (*Scenario, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("loading scenario %q: %w", p, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %q: %w", p, err)
	}
	return &s, nil
}

// LoadMetricsFile reads a bare metrics snapshot (no library envelope).
// Files ending in .json use the camelCase JSON names; anything else is YAML.
func LoadMetricsFile(p string) (ScenarioContext, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return ScenarioContext{}, fmt.Errorf("reading metrics %q: %w", p, err)
	}

	var c ScenarioContext
	if strings.EqualFold(filepath.Ext(p), ".json") {
		err = json.Unmarshal(data, &c)
	} else {
		err = yaml.Unmarshal(data, &c)
	}
	if err != nil {
		return ScenarioContext{}, fmt.Errorf("parsing metrics %q: %w", p, err)
	}
	return c, nil
}

// Save writes the Scenario atomically to <dir>/<id>.yaml.
func (s *Scenario) Save() error {
	dest, err := path(s.ID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating scenario dir: %w", err)
	}

	s.UpdatedAt = time.Now()

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling scenario: %w", err)
	}

	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp scenario file: %w", err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming scenario file: %w", err)
	}

	return nil
}

// List returns all scenarios sorted by updated_at descending.
func List() ([]*Scenario, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}

	var out []*Scenario
	for _, p := range entries {
		s, err := LoadFile(p)
		if err != nil {
			continue // skip unreadable or corrupt files
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})

	return out, nil
}

// Delete removes a scenario from the library.
func Delete(id string) error {
	p, err := path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("deleting scenario %q: %w", id, err)
	}
	return nil
}

// Sample returns a demo scenario: a 40 km/day commuter with a state subsidy.
func Sample() *Scenario {
	return New("city-commute", "City commute, 40 km/day", ScenarioContext{
		PetrolPrice:      102.5,
		ElectricityRate:  8,
		ChargingCost:     1.2,
		GridCO2Factor:    716,
		EVSubsidy:        150000,
		EVPriceReduction: 0,
		ShowGreenGrid:    false,
		EVTCO:            Ptr(1455000.0),
		ICETCO:           Ptr(1500000.0),
		Savings:          Ptr(45000.0),
		BreakEven:        Ptr("3.2"),
		CO2Savings:       Ptr(12000.0),
		EVRecommended:    Ptr(true),
	})
}
