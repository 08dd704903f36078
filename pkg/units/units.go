// Package units holds the fixed unit taxonomy used to rescale extracted
// magnitudes into one canonical unit per physical quantity.
//
// The taxonomy is a closed set of categories (Kind). Each Category carries
// its canonical unit and its own token-to-Transform mapping; tokens are the
// normalized form produced by NormalizeToken. The tables are checked when the
// package loads: every token belongs to exactly one category and every
// canonical unit maps to an identity transform, which is what makes
// converting an already converted pair a no-op.
//
//	v, unit, ok := units.Convert(0, "°C") // 273.15, "K", true
//	v, unit, ok = units.Convert(5, "lightyear") // 5, "lightyear", false
package units

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind identifies a unit category
type Kind uint8

const (
	Temperature Kind = iota
	Length
	Mass
	Time
	Pressure
	Force
	Energy
	Fraction

	numKinds
)

// String returns the category name
func (k Kind) String() string {
	switch k {
	case Temperature:
		return "temperature"
	case Length:
		return "length"
	case Mass:
		return "mass"
	case Time:
		return "time"
	case Pressure:
		return "pressure"
	case Force:
		return "force"
	case Energy:
		return "energy"
	case Fraction:
		return "fraction"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Kinds returns every category in declaration order
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// Category is one variant of the taxonomy
type Category struct {
	Kind      Kind
	Canonical string
	tokens    map[string]Transform
}

// Lookup returns the transform for a normalized token of this category
func (c Category) Lookup(token string) (Transform, bool) {
	t, ok := c.tokens[token]
	return t, ok
}

// Tokens returns the normalized tokens of this category, sorted
func (c Category) Tokens() []string {
	out := make([]string, 0, len(c.tokens))
	for tok := range c.tokens {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

var categories = [numKinds]Category{
	Temperature: {
		Kind:      Temperature,
		Canonical: "K",
		tokens: map[string]Transform{
			"degc": Affine{Mul: 1, Div: 1, Offset: 273.15},
			"c":    Affine{Mul: 1, Div: 1, Offset: 273.15},
			"degf": Affine{Shift: -32, Mul: 5, Div: 9, Offset: 273.15},
			"f":    Affine{Shift: -32, Mul: 5, Div: 9, Offset: 273.15},
			"k":    Affine{Mul: 1, Div: 1},
			"degk": Affine{Mul: 1, Div: 1},
		},
	},
	Length: {
		Kind:      Length,
		Canonical: "m",
		tokens: map[string]Transform{
			"mm": Scale(1e-3),
			"cm": Scale(1e-2),
			"m":  Scale(1),
			"km": Scale(1e3),
		},
	},
	Mass: {
		Kind:      Mass,
		Canonical: "kg",
		tokens: map[string]Transform{
			"mg": Scale(1e-6),
			"g":  Scale(1e-3),
			"kg": Scale(1),
			"t":  Scale(1e3),
		},
	},
	Time: {
		Kind:      Time,
		Canonical: "s",
		tokens: map[string]Transform{
			"ms":  Scale(1e-3),
			"s":   Scale(1),
			"min": Scale(60),
			"h":   Scale(3600),
		},
	},
	Pressure: {
		Kind:      Pressure,
		Canonical: "Pa",
		tokens: map[string]Transform{
			"pa":   Scale(1),
			"kpa":  Scale(1e3),
			"mpa":  Scale(1e6),
			"bar":  Scale(1e5),
			"mbar": Scale(1e2),
			"atm":  Scale(101325),
			"psi":  Scale(6894.757),
		},
	},
	Force: {
		Kind:      Force,
		Canonical: "N",
		tokens: map[string]Transform{
			"n":  Scale(1),
			"kn": Scale(1e3),
		},
	},
	Energy: {
		Kind:      Energy,
		Canonical: "J",
		tokens: map[string]Transform{
			"j":  Scale(1),
			"kj": Scale(1e3),
		},
	},
	Fraction: {
		Kind:      Fraction,
		Canonical: "1",
		tokens: map[string]Transform{
			"%":   Ratio(100),
			"pct": Ratio(100),
			"1":   Scale(1),
		},
	},
}

// token -> kind, built and checked at init
var index map[string]Kind

func init() {
	idx, err := buildIndex(categories[:])
	if err != nil {
		panic(err)
	}
	index = idx
}

func buildIndex(cats []Category) (map[string]Kind, error) {
	idx := make(map[string]Kind)
	for i, c := range cats {
		if c.Kind != Kind(i) {
			return nil, fmt.Errorf("units: category %s registered at slot %d", c.Kind, i)
		}
		for tok := range c.tokens {
			if NormalizeToken(tok) != tok {
				return nil, fmt.Errorf("units: token %q is not normalized", tok)
			}
			if prev, dup := idx[tok]; dup {
				return nil, fmt.Errorf("units: token %q in both %s and %s", tok, prev, c.Kind)
			}
			idx[tok] = c.Kind
		}
		canon, ok := c.tokens[NormalizeToken(c.Canonical)]
		if !ok || !canon.isIdentity() {
			return nil, fmt.Errorf("units: canonical unit %q of %s is not an identity token", c.Canonical, c.Kind)
		}
	}
	return idx, nil
}

// CategoryOf returns the category for k
func CategoryOf(k Kind) (Category, bool) {
	if k >= numKinds {
		return Category{}, false
	}
	return categories[k], true
}

// NormalizeToken folds a raw unit token into the lookup form: surrounding
// whitespace removed, Unicode compatibility forms folded (so "℃" reads as
// "°C"), the degree sign spelled "deg", micro written "u", lower case.
func NormalizeToken(u string) string {
	u = norm.NFKC.String(strings.TrimSpace(u))
	u = strings.ReplaceAll(u, "°", "deg")
	u = strings.ReplaceAll(u, "µ", "u")
	u = strings.ReplaceAll(u, "μ", "u")
	return strings.ToLower(u)
}

// Conversion is a resolved unit: which category it belongs to and how to
// reach the canonical unit.
type Conversion struct {
	Kind      Kind
	Token     string
	Canonical string
	Transform Transform
}

// Apply rescales v into the canonical unit
func (c Conversion) Apply(v float64) float64 {
	return c.Transform.Apply(v)
}

// Lookup resolves a raw unit token. Unknown tokens report false.
func Lookup(unit string) (Conversion, bool) {
	tok := NormalizeToken(unit)
	k, ok := index[tok]
	if !ok {
		return Conversion{}, false
	}
	c := categories[k]
	return Conversion{
		Kind:      k,
		Token:     tok,
		Canonical: c.Canonical,
		Transform: c.tokens[tok],
	}, true
}

// Convert rescales v from unit into its canonical unit. Unknown units come
// back exactly as given with ok false.
func Convert(v float64, unit string) (float64, string, bool) {
	conv, ok := Lookup(unit)
	if !ok {
		return v, unit, false
	}
	return conv.Apply(v), conv.Canonical, true
}
