package advisor

import "strings"

// rule binds a category to the keywords that select it.
type rule struct {
	category Category
	keywords []string
}

// rules are evaluated in order; the first rule with a matching keyword wins.
// Fallback has no rule: it is what remains when none match.
var rules = []rule{
	{EconomicImpact, []string{"affect", "decision", "cost", "money", "save", "worth"}},
	{BreakEven, []string{"break", "even", "long", "time", "year"}},
	{Environmental, []string{"environment", "nature", "green", "co2", "emission", "planet"}},
}

// Classify maps a free-text query to a Category. Matching is case-insensitive
// substring containment, so "saved" and "yearly" match "save" and "year".
func Classify(query string) Category {
	q := strings.ToLower(query)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return r.category
			}
		}
	}
	return Fallback
}

// Keywords returns a copy of the keywords that select c, in match order.
// Fallback has none.
func Keywords(c Category) []string {
	for _, r := range rules {
		if r.category == c {
			return append([]string(nil), r.keywords...)
		}
	}
	return nil
}
