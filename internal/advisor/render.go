package advisor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shahar-caura/evadvisor/internal/format"
	"github.com/shahar-caura/evadvisor/internal/scenario"
)

// unknown stands in for optional metrics the snapshot does not carry.
const unknown = "unknown"

func renderEconomic(l format.Locale, ctx scenario.ScenarioContext) string {
	savings := ctx.SavingsOrZero()
	amount := l.Currency(abs(savings))

	if savings > 0 {
		return fmt.Sprintf("✅ **Financial Winner: EV**\n\n"+
			"You will save **%s** over the ownership period. "+
			"The lower running costs (%s%s/kWh) quickly offset the higher initial price.",
			amount, l.Symbol, format.Plain(ctx.ElectricityRate))
	}
	return fmt.Sprintf("⚠️ **Financial Winner: ICE**\n\n"+
		"Currently, the petrol vehicle is cheaper by **%s**. "+
		"You might need higher daily usage or subsidies to make the EV profitable.",
		amount)
}

func renderBreakEven(l format.Locale, ctx scenario.ScenarioContext) string {
	var sb strings.Builder
	sb.WriteString("⏱️ **Break-even Timeline**\n\n")

	be, ok := ctx.BreakEvenText()
	switch {
	case !ok:
		sb.WriteString("The number of years needed to recover the extra cost of the EV is **unknown** for this scenario.")
	case isNumeric(be):
		fmt.Fprintf(&sb, "It will take **%s years** to recover the extra cost of the EV.", be)
	default:
		fmt.Fprintf(&sb, "Number of years needed to recover the extra cost of the EV: **%s**.", be)
	}

	fmt.Fprintf(&sb, "\n\n• Annual Savings: The EV is significantly cheaper to run per km.\n"+
		"• Subsidy: %s included.", l.Currency(ctx.EVSubsidy))
	return sb.String()
}

func renderEnvironmental(l format.Locale, ctx scenario.ScenarioContext) string {
	saved := unknown
	if kg, ok := ctx.CO2SavingsKg(); ok {
		saved = l.Number(kg) + " kg"
	}

	return fmt.Sprintf("🌱 **Environmental Impact**\n\n"+
		"• **CO₂ Saved:** %s (Lifetime)\n"+
		"• **Grid Cleanliness:** %s gCO₂/kWh\n\n"+
		"Even with the current grid, the EV is cleaner than a petrol car.",
		saved, format.Plain(ctx.GridCO2Factor))
}

// renderFallback keeps the sign of net savings in front of the symbol
// (-₹45,000), unlike the economic headers which show the absolute amount.
func renderFallback(l format.Locale, ctx scenario.ScenarioContext) string {
	verdict := "Stick with Petrol (ICE) ⛽"
	if ctx.Recommended() {
		verdict = "Go Electric (EV) ⚡"
	}

	return fmt.Sprintf("📊 **Scenario Summary**\n\n"+
		"• **Verdict:** %s\n"+
		"• **Net Savings:** %s\n"+
		"• **Break-even:** %s\n\n"+
		"I can answer specific questions about *savings*, *break-even point*, or *emissions*.",
		verdict, l.Currency(ctx.SavingsOrZero()), breakEvenSummary(ctx))
}

// breakEvenSummary renders break-even for the one-line summary: numeric
// values get a unit, descriptive ones ("never") are shown as is.
func breakEvenSummary(ctx scenario.ScenarioContext) string {
	be, ok := ctx.BreakEvenText()
	switch {
	case !ok:
		return unknown
	case isNumeric(be):
		return be + " years"
	default:
		return be
	}
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
