package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(list []Prop) (out []string) {
	out = make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.Name)
	}
	return out
}

func TestPartitionScenario(t *testing.T) {
	catalog := Catalog{
		"aria-label": {Type: "string"},
		"onClick":    {Type: "() => void"},
	}

	general, accessibility := Partition(catalog)

	assert.Equal(t, []string{"onClick"}, names(general))
	assert.Equal(t, []string{"aria-label"}, names(accessibility))
}

func TestIsAccessibility(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "aria-label", want: true},
		{name: "ARIA-describedby", want: true},
		{name: "accessibleName", want: true},
		{name: "isAccessible", want: true},
		{name: "accesibleName", want: false},
		{name: "ariaLabel", want: false},
		{name: "variant", want: false},
		{name: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAccessibility(tt.name))
		})
	}
}

func TestPartitionLaw(t *testing.T) {
	catalog := Catalog{
		"aria-label":       {},
		"aria-hidden":      {},
		"accessibleName":   {},
		"accessibilityId":  {},
		"onClick":          {},
		"variant":          {Required: true},
		"isDisabled":       {},
		"ACCESSIBLE-title": {},
	}

	general, accessibility := Partition(catalog)

	seen := map[string]int{}
	for _, p := range general {
		seen[p.Name]++
	}
	for _, p := range accessibility {
		seen[p.Name]++
	}

	assert.Len(t, seen, len(catalog))
	for name := range catalog {
		assert.Equal(t, 1, seen[name], "prop %q must land in exactly one table", name)
	}
}

func TestPartitionSortsRequiredFirst(t *testing.T) {
	catalog := Catalog{
		"size":       {},
		"variant":    {Required: true},
		"id":         {Required: true},
		"aria-label": {Required: true},
		"aria-busy":  {},
	}

	general, accessibility := Partition(catalog)

	assert.Equal(t, []string{"id", "variant", "size"}, names(general))
	assert.Equal(t, []string{"aria-label", "aria-busy"}, names(accessibility))
}

func TestPartitionEmpty(t *testing.T) {
	general, accessibility := Partition(nil)
	assert.Empty(t, general)
	assert.Empty(t, accessibility)
	assert.NotNil(t, accessibility)
}
