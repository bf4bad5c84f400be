package classify

// Rule maps a title keyword to a category badge.
type Rule struct {
	Keyword  string
	Category Category
	Label    string
	Colors   Colors
}

// CategoryRules is evaluated in order; the first keyword found in a title wins.
//
//nolint:gochecknoglobals // Classification configuration constants
var CategoryRules = []Rule{
	{
		Keyword:  "Accelerator",
		Category: CategoryAccelerator,
		Label:    "Accelerator",
		Colors:   Colors{Background: "#fef7e0", Foreground: "#b06000"},
	},
	{
		Keyword:  "Template",
		Category: CategoryTemplate,
		Label:    "Template",
		Colors:   Colors{Background: "#f3e8fd", Foreground: "#8430ce"},
	},
	{
		Keyword:  "Core Component",
		Category: CategoryCoreComponent,
		Label:    "Core Component",
		Colors:   Colors{Background: "#e8f0fe", Foreground: "#1967d2"},
	},
	{
		Keyword:  "Compound Component",
		Category: CategoryCompoundComponent,
		Label:    "Compound Component",
		Colors:   Colors{Background: "#e3f2fd", Foreground: "#0d47a1"},
	},
	{
		Keyword:  "Beta",
		Category: CategoryBeta,
		Label:    "Beta",
		Colors:   Colors{Background: "#fce8e6", Foreground: "#c5221f"},
	},
}

// POCKeyword marks a title as a proof of concept. Matching is case-sensitive.
const POCKeyword = "POC"

//nolint:gochecknoglobals // Classification configuration constants
var maturityBadges = map[Maturity]struct {
	Label  string
	Colors Colors
}{
	MaturityPOC: {
		Label:  "POC",
		Colors: Colors{Background: "#fce8e6", Foreground: "#c5221f"},
	},
	MaturityProductionReady: {
		Label:  "Production Ready",
		Colors: Colors{Background: "#e6f4ea", Foreground: "#137333"},
	},
}
