// Package classify derives maturity and category badges for catalog stories.
//
// Catalog entries may carry explicit classification fields. Titles without
// them go through Title, the keyword matcher kept for catalogs that encode
// classification in the story path ("Core Components/Button", "POC/Widget").
package classify

import (
	"strings"

	"github.com/pkg/errors"
)

// Maturity is the release stage of a component.
type Maturity string

const (
	MaturityUnset           Maturity = ""
	MaturityPOC             Maturity = "poc"
	MaturityProductionReady Maturity = "production_ready"
)

// Category is the architectural role of a component.
type Category string

const (
	CategoryUnset             Category = ""
	CategoryAccelerator       Category = "accelerator"
	CategoryTemplate          Category = "template"
	CategoryCoreComponent     Category = "core_component"
	CategoryCompoundComponent Category = "compound_component"
	CategoryBeta              Category = "beta"
	CategoryNone              Category = "none"
)

// Colors is a background/foreground pair for a badge or chip.
type Colors struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// Classification is the pair of badges shown in a docs page header.
type Classification struct {
	Maturity Maturity `json:"maturity"`
	Category Category `json:"category"`
}

// Title classifies a story by keywords in its title.
func Title(title string) (c Classification) {
	c.Maturity = MaturityProductionReady
	if strings.Contains(title, POCKeyword) {
		c.Maturity = MaturityPOC
	}

	c.Category = CategoryNone
	for _, rule := range CategoryRules {
		if strings.Contains(title, rule.Keyword) {
			c.Category = rule.Category
			break
		}
	}

	return c
}

// Resolve fills unset fields of explicit from the title.
func Resolve(explicit Classification, title string) (c Classification) {
	c = explicit
	if c.Maturity != MaturityUnset && c.Category != CategoryUnset {
		return c
	}

	fromTitle := Title(title)
	if c.Maturity == MaturityUnset {
		c.Maturity = fromTitle.Maturity
	}
	if c.Category == CategoryUnset {
		c.Category = fromTitle.Category
	}

	return c
}

// Label returns the badge text.
func (m Maturity) Label() (label string) {
	label = maturityBadges[m].Label
	return label
}

// Colors returns the badge colours.
func (m Maturity) Colors() (colors Colors) {
	colors = maturityBadges[m].Colors
	return colors
}

// Label returns the badge text, empty for CategoryNone.
func (c Category) Label() (label string) {
	rule, ok := c.rule()
	if ok {
		label = rule.Label
	}
	return label
}

// Colors returns the badge colours, zero for CategoryNone.
func (c Category) Colors() (colors Colors) {
	rule, ok := c.rule()
	if ok {
		colors = rule.Colors
	}
	return colors
}

// HasBadge reports whether the category renders a badge.
func (c Category) HasBadge() (ok bool) {
	_, ok = c.rule()
	return ok
}

// Rank is the category's position in CategoryRules, which is also the
// catalog sort order. Categories without a badge rank last.
func (c Category) Rank() (rank int) {
	for i, r := range CategoryRules {
		if r.Category == c {
			rank = i
			return rank
		}
	}
	rank = len(CategoryRules)
	return rank
}

func (c Category) rule() (rule Rule, ok bool) {
	for _, r := range CategoryRules {
		if r.Category == c {
			rule = r
			ok = true
			return rule, ok
		}
	}
	return rule, ok
}

// ParseMaturity parses an explicit maturity value. Empty input is unset.
func ParseMaturity(s string) (m Maturity, err error) {
	m = Maturity(strings.TrimSpace(s))
	switch m {
	case MaturityUnset, MaturityPOC, MaturityProductionReady:
		return m, err
	}
	err = errors.Errorf("unknown maturity %q: must be %q or %q", s, MaturityPOC, MaturityProductionReady)
	m = MaturityUnset
	return m, err
}

// ParseCategory parses an explicit category value. Empty input is unset.
func ParseCategory(s string) (c Category, err error) {
	c = Category(strings.TrimSpace(s))
	if c == CategoryUnset || c == CategoryNone {
		return c, err
	}
	if _, ok := c.rule(); ok {
		return c, err
	}
	err = errors.Errorf("unknown category %q", s)
	c = CategoryUnset
	return c, err
}
