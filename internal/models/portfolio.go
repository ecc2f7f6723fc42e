package models

type PortfolioType string

const (
	PortfolioConservative PortfolioType = "CONSERVATIVE"
	PortfolioBalanced     PortfolioType = "BALANCED"
	PortfolioGrowth       PortfolioType = "GROWTH"
)

type AllocationSlice struct {
	Label      string
	Percentage int
}

// Portfolio is informational only: nothing is invested for real.
type Portfolio struct {
	Type  PortfolioType
	Label string
	// AnnualRate is the expected yearly growth as a fraction (0.07 = 7%).
	AnnualRate float64
	Allocation []AllocationSlice
}

// Portfolios is the single table read by the selection view, the summary view
// and the reference backend's growth simulation.
var Portfolios = []Portfolio{
	{
		Type:       PortfolioConservative,
		Label:      "Conservative",
		AnnualRate: 0.04,
		Allocation: []AllocationSlice{
			{Label: "Bonds", Percentage: 50},
			{Label: "Index Funds", Percentage: 30},
			{Label: "Savings Account", Percentage: 20},
		},
	},
	{
		Type:       PortfolioBalanced,
		Label:      "Balanced",
		AnnualRate: 0.07,
		Allocation: []AllocationSlice{
			{Label: "Index Funds", Percentage: 50},
			{Label: "Bonds", Percentage: 30},
			{Label: "Savings Account", Percentage: 20},
		},
	},
	{
		Type:       PortfolioGrowth,
		Label:      "Growth",
		AnnualRate: 0.10,
		Allocation: []AllocationSlice{
			{Label: "Index Funds", Percentage: 70},
			{Label: "Bonds", Percentage: 20},
			{Label: "Savings Account", Percentage: 10},
		},
	},
}

// PortfolioInfo looks up the informational entry for t.
func PortfolioInfo(t PortfolioType) (Portfolio, bool) {
	for _, p := range Portfolios {
		if p.Type == t {
			return p, true
		}
	}
	return Portfolio{}, false
}

// ParsePortfolioType maps a wire value to a PortfolioType. Unknown values fall
// back to PortfolioConservative, the lowest-risk profile, and ok is false.
// Like ParseGoalType the fallback is lossy.
func ParsePortfolioType(s string) (t PortfolioType, ok bool) {
	if p, found := PortfolioInfo(PortfolioType(s)); found {
		return p.Type, true
	}
	return PortfolioConservative, false
}
