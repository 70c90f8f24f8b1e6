package scenario

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingField indicates a snapshot without one of its required metrics.
var ErrMissingField = errors.New("missing required field")

// ScenarioContext is a read-only snapshot of the metrics computed for one
// EV-vs-ICE comparison. Required metrics are plain values; derived metrics
// are pointers and nil means "unknown".
type ScenarioContext struct {
	PetrolPrice      float64 `json:"petrolPrice" yaml:"petrol_price"`
	ElectricityRate  float64 `json:"electricityRate" yaml:"electricity_rate"`
	ChargingCost     float64 `json:"chargingCost" yaml:"charging_cost"`
	GridCO2Factor    float64 `json:"gridCO2Factor" yaml:"grid_co2_factor"`
	EVSubsidy        float64 `json:"evSubsidy" yaml:"ev_subsidy"`
	EVPriceReduction float64 `json:"evPriceReduction" yaml:"ev_price_reduction"`
	ShowGreenGrid    bool    `json:"showGreenGrid" yaml:"show_green_grid"`

	EVTCO         *float64 `json:"evTCO,omitempty" yaml:"ev_tco,omitempty"`
	ICETCO        *float64 `json:"iceTCO,omitempty" yaml:"ice_tco,omitempty"`
	Savings       *float64 `json:"savings,omitempty" yaml:"savings,omitempty"`
	BreakEven     *string  `json:"breakEven,omitempty" yaml:"break_even,omitempty"`
	CO2Savings    *float64 `json:"co2Savings,omitempty" yaml:"co2_savings,omitempty"`
	EVRecommended *bool    `json:"evRecommended,omitempty" yaml:"ev_recommended,omitempty"`
}

// Ptr returns a pointer to v. Handy for filling optional metrics.
func Ptr[T any](v T) *T { return &v }

// Or returns *p, or def when p is nil. Every optional metric goes through
// this so the default policy lives in one place.
func Or[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// SavingsOrZero returns net EV savings, treating unknown as zero.
func (c ScenarioContext) SavingsOrZero() float64 { return Or(c.Savings, 0) }

// BreakEvenText returns the break-even value and whether it is known.
func (c ScenarioContext) BreakEvenText() (string, bool) {
	return Or(c.BreakEven, ""), c.BreakEven != nil
}

// CO2SavingsKg returns lifetime CO2 avoided and whether it is known.
func (c ScenarioContext) CO2SavingsKg() (float64, bool) {
	return Or(c.CO2Savings, 0), c.CO2Savings != nil
}

// Recommended reports whether the EV is the recommended choice. Unknown is false.
func (c ScenarioContext) Recommended() bool { return Or(c.EVRecommended, false) }

// wireContext mirrors ScenarioContext with every field optional so decoding
// can tell a missing required metric from a zero one.
type wireContext struct {
	PetrolPrice      *float64 `json:"petrolPrice" yaml:"petrol_price"`
	ElectricityRate  *float64 `json:"electricityRate" yaml:"electricity_rate"`
	ChargingCost     *float64 `json:"chargingCost" yaml:"charging_cost"`
	GridCO2Factor    *float64 `json:"gridCO2Factor" yaml:"grid_co2_factor"`
	EVSubsidy        *float64 `json:"evSubsidy" yaml:"ev_subsidy"`
	EVPriceReduction *float64 `json:"evPriceReduction" yaml:"ev_price_reduction"`
	ShowGreenGrid    *bool    `json:"showGreenGrid" yaml:"show_green_grid"`

	EVTCO         *float64 `json:"evTCO" yaml:"ev_tco"`
	ICETCO        *float64 `json:"iceTCO" yaml:"ice_tco"`
	Savings       *float64 `json:"savings" yaml:"savings"`
	BreakEven     *string  `json:"breakEven" yaml:"break_even"`
	CO2Savings    *float64 `json:"co2Savings" yaml:"co2_savings"`
	EVRecommended *bool    `json:"evRecommended" yaml:"ev_recommended"`
}

// requiredField names a required metric in both wire formats.
type requiredField struct {
	json, yaml string
	present    bool
}

func (w *wireContext) required() []requiredField {
	return []requiredField{
		{"petrolPrice", "petrol_price", w.PetrolPrice != nil},
		{"electricityRate", "electricity_rate", w.ElectricityRate != nil},
		{"chargingCost", "charging_cost", w.ChargingCost != nil},
		{"gridCO2Factor", "grid_co2_factor", w.GridCO2Factor != nil},
		{"evSubsidy", "ev_subsidy", w.EVSubsidy != nil},
		{"evPriceReduction", "ev_price_reduction", w.EVPriceReduction != nil},
		{"showGreenGrid", "show_green_grid", w.ShowGreenGrid != nil},
	}
}

func (w *wireContext) into(c *ScenarioContext, yamlNames bool) error {
	var errs []error
	for _, f := range w.required() {
		if f.present {
			continue
		}
		name := f.json
		if yamlNames {
			name = f.yaml
		}
		errs = append(errs, fmt.Errorf("%w: %s", ErrMissingField, name))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	*c = ScenarioContext{
		PetrolPrice:      *w.PetrolPrice,
		ElectricityRate:  *w.ElectricityRate,
		ChargingCost:     *w.ChargingCost,
		GridCO2Factor:    *w.GridCO2Factor,
		EVSubsidy:        *w.EVSubsidy,
		EVPriceReduction: *w.EVPriceReduction,
		ShowGreenGrid:    *w.ShowGreenGrid,
		EVTCO:            w.EVTCO,
		ICETCO:           w.ICETCO,
		Savings:          w.Savings,
		BreakEven:        w.BreakEven,
		CO2Savings:       w.CO2Savings,
		EVRecommended:    w.EVRecommended,
	}
	return nil
}

// UnmarshalJSON decodes a snapshot and rejects it if a required metric is absent.
func (c *ScenarioContext) UnmarshalJSON(data []byte) error {
	var w wireContext
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	return w.into(c, false)
}

// UnmarshalYAML decodes a snapshot and rejects it if a required metric is absent.
func (c *ScenarioContext) UnmarshalYAML(value *yaml.Node) error {
	var w wireContext
	if err := value.Decode(&w); err != nil {
		return err
	}
	return w.into(c, true)
}
