// Package advisor answers free-text questions about an EV-vs-ICE scenario.
//
// A query is classified into one of a fixed set of categories by keyword
// and answered with that category's template, filled from a
// scenario.ScenarioContext. Everything here is pure: the same query and
// snapshot always produce the same reply, and no input makes it fail.
package advisor

import (
	"github.com/shahar-caura/evadvisor/internal/format"
	"github.com/shahar-caura/evadvisor/internal/scenario"
)

// Advisor renders replies in a fixed locale. The zero value is not usable; call New.
type Advisor struct {
	locale format.Locale
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithLocale sets the currency symbol and digit grouping used in replies.
func WithLocale(l format.Locale) Option {
	return func(a *Advisor) { a.locale = l }
}

// New returns an Advisor using format.Default unless overridden.
func New(opts ...Option) *Advisor {
	a := &Advisor{locale: format.Default}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Locale returns the locale replies are rendered in.
func (a *Advisor) Locale() format.Locale { return a.locale }

// Render fills the template for c from ctx.
func (a *Advisor) Render(c Category, ctx scenario.ScenarioContext) string {
	switch c {
	case EconomicImpact:
		return renderEconomic(a.locale, ctx)
	case BreakEven:
		return renderBreakEven(a.locale, ctx)
	case Environmental:
		return renderEnvironmental(a.locale, ctx)
	default:
		return renderFallback(a.locale, ctx)
	}
}

// Reply classifies query and renders the matching template.
func (a *Advisor) Reply(query string, ctx scenario.ScenarioContext) Reply {
	c := Classify(query)
	return Reply{Category: c, Text: a.Render(c, ctx)}
}

var std = New()

// Render fills the template for c using the default locale.
func Render(c Category, ctx scenario.ScenarioContext) string { return std.Render(c, ctx) }

// Respond classifies query and returns the reply text in the default locale.
func Respond(query string, ctx scenario.ScenarioContext) string {
	return std.Reply(query, ctx).Text
}
