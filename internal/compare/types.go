package compare

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/rgehrsitz/coltax/internal/regime"
	"github.com/shopspring/decimal"
)

// Goal selects what the ranking optimizes
type Goal string

const (
	GoalMaximizeNet Goal = "maximize_net"
	GoalMinimizeTax Goal = "minimize_tax"
)

// ParseGoal accepts the goal names used on the command line
func ParseGoal(s string) (Goal, error) {
	switch s {
	case "", "net", string(GoalMaximizeNet):
		return GoalMaximizeNet, nil
	case "tax", string(GoalMinimizeTax):
		return GoalMinimizeTax, nil
	default:
		return "", fmt.Errorf("unknown comparison goal %q (use %s or %s)", s, GoalMaximizeNet, GoalMinimizeTax)
	}
}

// ComparisonResult is one regime's outcome placed in a comparison
type ComparisonResult struct {
	Rank   int                 `json:"rank"` // 1-based; 0 when not applicable
	Result domain.RegimeResult `json:"result"`

	// Comparison to the top-ranked regime
	NetDiffFromBest decimal.Decimal `json:"netDiffFromBest"`
	TaxDiffFromBest decimal.Decimal `json:"taxDiffFromBest"`
}

// Label is the display name of the regime
func (cr ComparisonResult) Label() string {
	return cr.Result.Regime.Label()
}

// ComparisonSet is the ranked outcome of running every regime on one amount
type ComparisonSet struct {
	Year          int             `json:"year"`
	Amount        decimal.Decimal `json:"amount"`
	Mode          Mode            `json:"mode"`
	Goal          Goal            `json:"goal"`
	Pensioner     bool            `json:"pensioner"`
	ActivityGroup string          `json:"activityGroup,omitempty"`
	ParamsSource  string          `json:"paramsSource,omitempty"`

	Ranked          []ComparisonResult `json:"ranked"`
	NotApplicable   []ComparisonResult `json:"notApplicable"`
	Recommendations []string           `json:"recommendations"`
}

// Best returns the top-ranked result, or nil when nothing applies
func (cs *ComparisonSet) Best() *ComparisonResult {
	if len(cs.Ranked) == 0 {
		return nil
	}
	return &cs.Ranked[0]
}

// Find returns the result for a regime wherever it landed
func (cs *ComparisonSet) Find(kind domain.RegimeKind) (*ComparisonResult, bool) {
	for i := range cs.Ranked {
		if cs.Ranked[i].Result.Regime == kind {
			return &cs.Ranked[i], true
		}
	}
	for i := range cs.NotApplicable {
		if cs.NotApplicable[i].Result.Regime == kind {
			return &cs.NotApplicable[i], true
		}
	}
	return nil, false
}

// Rank orders applicable results by the goal and sets inapplicable ones aside.
// The sort is stable and ties fall back to the fixed regime order, so identical
// input always produces the identical ranking.
func Rank(results []domain.RegimeResult, goal Goal) (ranked, excluded []ComparisonResult) {
	ranked = []ComparisonResult{}
	excluded = []ComparisonResult{}
	for _, r := range results {
		if r.Applicable {
			ranked = append(ranked, ComparisonResult{Result: r})
		} else {
			excluded = append(excluded, ComparisonResult{Result: r})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Result, ranked[j].Result
		var c int
		switch goal {
		case GoalMinimizeTax:
			c = b.TotalTax().Cmp(a.TotalTax())
		default:
			c = a.AnnualNet.Cmp(b.AnnualNet)
		}
		if c != 0 {
			return c > 0
		}
		return regime.Order(a.Regime) < regime.Order(b.Regime)
	})
	sort.SliceStable(excluded, func(i, j int) bool {
		return regime.Order(excluded[i].Result.Regime) < regime.Order(excluded[j].Result.Regime)
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, excluded
}

// MetricsCalculator derives the differences shown next to each regime
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateComparison computes a result's distance from the best regime
func (mc *MetricsCalculator) CalculateComparison(result, best ComparisonResult) ComparisonResult {
	result.NetDiffFromBest = result.Result.AnnualNet.Sub(best.Result.AnnualNet)
	result.TaxDiffFromBest = result.Result.TotalTax().Sub(best.Result.TotalTax())
	return result
}

// GenerateRecommendations creates the plain-language summary of a comparison
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	best := compSet.Best()
	if best == nil {
		recommendations = append(recommendations, "No regime is applicable for this amount")
	} else {
		switch compSet.Goal {
		case GoalMinimizeTax:
			recommendations = append(recommendations,
				fmt.Sprintf("Lowest tax: %s with %s of annual income tax",
					best.Label(), FormatCOP(best.Result.TotalTax())))
		default:
			recommendations = append(recommendations,
				fmt.Sprintf("Best net income: %s leaves %s a year to the worker",
					best.Label(), FormatCOP(best.Result.AnnualNet)))
		}

		if len(compSet.Ranked) > 1 {
			runnerUp := compSet.Ranked[1]
			switch compSet.Goal {
			case GoalMinimizeTax:
				recommendations = append(recommendations,
					fmt.Sprintf("%s pays %s more tax than %s",
						runnerUp.Label(), FormatCOP(runnerUp.TaxDiffFromBest), best.Label()))
			default:
				recommendations = append(recommendations,
					fmt.Sprintf("%s leaves %s less a year than %s",
						runnerUp.Label(), FormatCOP(runnerUp.NetDiffFromBest.Neg()), best.Label()))
			}
		}
	}

	for _, cr := range compSet.Ranked {
		if cr.Result.VATLiability.IsPositive() {
			recommendations = append(recommendations,
				fmt.Sprintf("%s: annual income above the VAT threshold, register for VAT (%s a year charged to the client)",
					cr.Label(), FormatCOP(cr.Result.VATLiability)))
		}
		if cr.Result.Base.LimitApplied {
			recommendations = append(recommendations,
				fmt.Sprintf("%s: deductions capped by the %s ceiling; extra deductible spending will not lower the withholding",
					cr.Label(), cr.Result.Base.LimitType))
		}
	}

	for _, cr := range compSet.NotApplicable {
		recommendations = append(recommendations,
			fmt.Sprintf("%s not applicable: %s", cr.Label(), cr.Result.Reason))
	}

	return recommendations
}
