package advisor

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/shahar-caura/evadvisor/internal/format"
	"github.com/shahar-caura/evadvisor/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// requiredOnly carries the required metrics and nothing derived.
func requiredOnly() scenario.ScenarioContext {
	return scenario.ScenarioContext{
		PetrolPrice:      102.5,
		ElectricityRate:  8,
		ChargingCost:     1.2,
		GridCO2Factor:    716,
		EVSubsidy:        150000,
		EVPriceReduction: 0,
	}
}

func fullContext() scenario.ScenarioContext {
	c := requiredOnly()
	c.EVTCO = scenario.Ptr(1455000.0)
	c.ICETCO = scenario.Ptr(1500000.0)
	c.Savings = scenario.Ptr(45000.0)
	c.BreakEven = scenario.Ptr("3.2")
	c.CO2Savings = scenario.Ptr(12000.0)
	c.EVRecommended = scenario.Ptr(true)
	return c
}

func TestRespond_EconomicImpactEVWins(t *testing.T) {
	q := "How does this affect my wallet?"
	require.Equal(t, EconomicImpact, Classify(q))

	out := Respond(q, fullContext())

	assert.Contains(t, out, "Financial Winner: EV")
	assert.Contains(t, out, "**₹45,000**")
	assert.Contains(t, out, "(₹8/kWh)")
	assert.NotContains(t, out, "Financial Winner: ICE")
}

func TestRender_EconomicImpactICEWins(t *testing.T) {
	c := fullContext()
	c.Savings = scenario.Ptr(-125000.0)

	out := Render(EconomicImpact, c)

	assert.Contains(t, out, "Financial Winner: ICE")
	assert.Contains(t, out, "cheaper by **₹1,25,000**")
	assert.NotContains(t, out, "-₹")
	assert.Contains(t, out, "subsidies")
}

func TestRender_EconomicImpactRequiredOnly(t *testing.T) {
	out := Render(EconomicImpact, requiredOnly())

	assert.Contains(t, out, "Financial Winner: ICE")
	assert.Contains(t, out, "cheaper by **₹0**")
}

func TestRender_EconomicImpactZeroSavingsIsICE(t *testing.T) {
	c := fullContext()
	c.Savings = scenario.Ptr(0.0)

	assert.Contains(t, Render(EconomicImpact, c), "Financial Winner: ICE")
}

func TestRender_EconomicImpactExactText(t *testing.T) {
	want := "✅ **Financial Winner: EV**\n\n" +
		"You will save **₹45,000** over the ownership period. " +
		"The lower running costs (₹8/kWh) quickly offset the higher initial price."
	assert.Equal(t, want, Render(EconomicImpact, fullContext()))
}

func TestRespond_BreakEven(t *testing.T) {
	q := "When do I break even?"
	require.Equal(t, BreakEven, Classify(q))

	out := Respond(q, fullContext())

	assert.Contains(t, out, "Break-even Timeline")
	assert.Contains(t, out, "**3.2 years**")
	assert.Contains(t, out, "Subsidy: ₹1,50,000 included.")
}

func TestRender_BreakEvenDescriptive(t *testing.T) {
	c := fullContext()
	c.BreakEven = scenario.Ptr("never")

	out := Render(BreakEven, c)

	assert.Contains(t, out, "**never**")
	assert.Contains(t, out, "years")
	assert.NotContains(t, out, "never years")
}

func TestRender_BreakEvenUnknown(t *testing.T) {
	out := Render(BreakEven, requiredOnly())

	assert.Contains(t, out, "**unknown**")
	assert.Contains(t, out, "years")
	assert.Contains(t, out, "₹1,50,000")
}

func TestRespond_Environmental(t *testing.T) {
	q := "Is this good for the planet?"
	require.Equal(t, Environmental, Classify(q))

	out := Respond(q, fullContext())

	assert.Contains(t, out, "Environmental Impact")
	assert.Contains(t, out, "12,000 kg (Lifetime)")
	assert.Contains(t, out, "716 gCO₂/kWh")
	assert.Contains(t, out, "the EV is cleaner")
}

func TestRender_EnvironmentalUnknownCO2(t *testing.T) {
	out := Render(Environmental, requiredOnly())

	assert.Contains(t, out, "**CO₂ Saved:** unknown (Lifetime)")
	assert.Contains(t, out, "716 gCO₂/kWh")
}

func TestRespond_Fallback(t *testing.T) {
	require.Equal(t, Fallback, Classify("xyz"))

	out := Respond("xyz", fullContext())

	assert.Contains(t, out, "**Verdict:** Go Electric (EV) ⚡")
	assert.Contains(t, out, "**Net Savings:** ₹45,000")
	assert.Contains(t, out, "**Break-even:** 3.2 years")
	assert.Contains(t, out, "*savings*, *break-even point*, or *emissions*")
}

func TestRender_FallbackRequiredOnly(t *testing.T) {
	out := Render(Fallback, requiredOnly())

	assert.Contains(t, out, "**Verdict:** Stick with Petrol (ICE) ⛽")
	assert.Contains(t, out, "**Net Savings:** ₹0")
	assert.Contains(t, out, "**Break-even:** unknown")
	assert.Contains(t, out, "*savings*, *break-even point*, or *emissions*")
}

func TestRender_FallbackNegativeSavingsKeepsSign(t *testing.T) {
	c := fullContext()
	c.Savings = scenario.Ptr(-45000.0)
	c.EVRecommended = scenario.Ptr(false)

	out := Render(Fallback, c)

	assert.Contains(t, out, "**Net Savings:** -₹45,000")
	assert.Contains(t, out, "Stick with Petrol (ICE)")
}

func TestRender_NonFiniteMetricsFromYAML(t *testing.T) {
	const doc = `petrol_price: 102.5
electricity_rate: 8
charging_cost: 1.2
grid_co2_factor: 716
ev_subsidy: .inf
ev_price_reduction: 0
show_green_grid: false
savings: .inf
co2_savings: .nan
`
	var c scenario.ScenarioContext
	require.NoError(t, yaml.Unmarshal([]byte(doc), &c))

	var out string
	require.NotPanics(t, func() { out = Render(EconomicImpact, c) })
	assert.Contains(t, out, "You will save **₹∞**")

	require.NotPanics(t, func() { out = Render(Fallback, c) })
	assert.Contains(t, out, "**Net Savings:** ₹∞")

	require.NotPanics(t, func() { out = Render(BreakEven, c) })
	assert.Contains(t, out, "Subsidy: ₹∞ included.")

	require.NotPanics(t, func() { out = Render(Environmental, c) })
	assert.Contains(t, out, "**CO₂ Saved:** NaN kg")

	c.Savings = scenario.Ptr(math.Inf(-1))
	require.NotPanics(t, func() { out = Render(EconomicImpact, c) })
	assert.Contains(t, out, "cheaper by **₹∞**")
	require.NotPanics(t, func() { out = Render(Fallback, c) })
	assert.Contains(t, out, "**Net Savings:** -₹∞")
}

func TestRender_UnknownCategoryFallsBack(t *testing.T) {
	assert.Equal(t, Render(Fallback, fullContext()), Render(Category(42), fullContext()))
}

func TestRender_NoPanicOnAnyCategory(t *testing.T) {
	for _, c := range []Category{EconomicImpact, BreakEven, Environmental, Fallback} {
		assert.NotPanics(t, func() {
			out := Render(c, scenario.ScenarioContext{})
			assert.NotEmpty(t, out)
		}, "category %s", c)
	}
}

func TestRespond_Deterministic(t *testing.T) {
	queries := []string{"", "xyz", "cost?", "how long", "green", "money over time and co2"}
	ctx := fullContext()
	for _, q := range queries {
		assert.Equal(t, Respond(q, ctx), Respond(q, ctx), "query %q", q)
	}
}

func TestAdvisor_WithLocale(t *testing.T) {
	a := New(WithLocale(format.Locale{Symbol: "$", Grouping: format.GroupingWestern}))
	c := fullContext()
	c.Savings = scenario.Ptr(1234567.0)

	r := a.Reply("is it worth it", c)

	assert.Equal(t, EconomicImpact, r.Category)
	assert.Contains(t, r.Text, "**$1,234,567**")
	assert.Contains(t, r.Text, "($8/kWh)")
	assert.Equal(t, "$", a.Locale().Symbol)
}

func TestAdvisor_ConcurrentReplies(t *testing.T) {
	a := New()
	ctx := fullContext()
	want := a.Reply("when do I break even", ctx)

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := a.Reply("when do I break even", ctx); got != want {
				errs <- got.Text
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Fatalf("concurrent reply differed: %s", e)
	}
}

func TestSuggestedQuestions_CoverEachTopic(t *testing.T) {
	seen := map[Category]bool{}
	for _, q := range SuggestedQuestions {
		seen[Classify(q)] = true
	}
	assert.True(t, seen[EconomicImpact])
	assert.True(t, seen[BreakEven])
	assert.True(t, seen[Environmental])
	assert.True(t, strings.Contains(Greeting, "Scenario Advisor"))
}

func TestCategory_TextRoundTrip(t *testing.T) {
	for _, c := range []Category{EconomicImpact, BreakEven, Environmental, Fallback} {
		b, err := c.MarshalText()
		require.NoError(t, err)

		var got Category
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("weather")
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Equal(t, "category(42)", Category(42).String())
}
