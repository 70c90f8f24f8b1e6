package advisor

import (
	"errors"
	"fmt"
)

// Category is the intent a query is classified into.
type Category int

const (
	Fallback Category = iota
	EconomicImpact
	BreakEven
	Environmental
)

var categoryNames = map[Category]string{
	EconomicImpact: "economic_impact",
	BreakEven:      "break_even",
	Environmental:  "environmental",
	Fallback:       "fallback",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ErrUnknownCategory indicates a category name that ParseCategory does not recognise.
var ErrUnknownCategory = errors.New("unknown category")

// ParseCategory maps a wire name back to its Category.
func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return Fallback, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// MarshalText encodes the category by its wire name.
func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText decodes a wire name.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Reply is a rendered answer together with the category that produced it.
type Reply struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}
