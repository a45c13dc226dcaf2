package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ScheduleKind identifies which legal table a BracketSchedule models
type ScheduleKind string

const (
	ScheduleMonthlyWithholding ScheduleKind = "monthly_withholding"
	ScheduleAnnualIncomeTax    ScheduleKind = "annual_income_tax"
	ScheduleSimple             ScheduleKind = "simple"
)

// Bracket is one marginal range of a schedule, expressed in UVT.
// To is nil for the final, unbounded bracket. Accumulated is the tax due at From.
type Bracket struct {
	From        decimal.Decimal
	To          *decimal.Decimal
	Rate        decimal.Decimal
	Accumulated decimal.Decimal
}

// Unbounded reports whether the bracket has no upper limit
func (b Bracket) Unbounded() bool {
	return b.To == nil
}

// BracketInput is the raw form of a bracket as it appears in a tax-year file
type BracketInput struct {
	From decimal.Decimal  `yaml:"from" json:"from"`
	To   *decimal.Decimal `yaml:"to,omitempty" json:"to,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// BracketSchedule is an immutable progressive table covering [0, ∞).
// Build it with NewBracketSchedule; the zero value evaluates to no tax.
type BracketSchedule struct {
	name     string
	kind     ScheduleKind
	brackets []Bracket
}

// NewBracketSchedule validates the raw brackets and pre-computes the accumulated
// tax at each lower bound so evaluation never re-sums lower brackets.
func NewBracketSchedule(name string, kind ScheduleKind, inputs []BracketInput) (*BracketSchedule, error) {
	if len(inputs) == 0 {
		return nil, &InvalidScheduleError{Schedule: name, Reason: "no brackets defined"}
	}
	if !inputs[0].From.IsZero() {
		return nil, &InvalidScheduleError{Schedule: name, Reason: fmt.Sprintf("first bracket must start at 0, got %s", inputs[0].From)}
	}

	brackets := make([]Bracket, 0, len(inputs))
	accumulated := decimal.Zero
	for i, in := range inputs {
		if in.Rate.IsNegative() {
			return nil, &InvalidScheduleError{Schedule: name, Reason: fmt.Sprintf("bracket %d has a negative rate", i)}
		}
		last := i == len(inputs)-1
		if in.To == nil && !last {
			return nil, &InvalidScheduleError{Schedule: name, Reason: fmt.Sprintf("bracket %d is unbounded but not last", i)}
		}
		if last && in.To != nil {
			return nil, &InvalidScheduleError{Schedule: name, Reason: "final bracket must be unbounded"}
		}
		if in.To != nil && !in.To.GreaterThan(in.From) {
			return nil, &InvalidScheduleError{Schedule: name, Reason: fmt.Sprintf("bracket %d upper bound %s is not above lower bound %s", i, in.To, in.From)}
		}
		if i > 0 {
			prev := inputs[i-1]
			if !in.From.GreaterThan(prev.From) {
				return nil, &InvalidScheduleError{Schedule: name, Reason: fmt.Sprintf("bracket %d lower bound is not increasing", i)}
			}
			if !prev.To.Equal(in.From) {
				return nil, &InvalidScheduleError{Schedule: name, Reason: fmt.Sprintf("gap or overlap between bracket %d and %d", i-1, i)}
			}
			accumulated = accumulated.Add(in.From.Sub(prev.From).Mul(prev.Rate))
		}

		b := Bracket{From: in.From, Rate: in.Rate, Accumulated: accumulated}
		if in.To != nil {
			to := *in.To
			b.To = &to
		}
		brackets = append(brackets, b)
	}

	return &BracketSchedule{name: name, kind: kind, brackets: brackets}, nil
}

// Name returns the schedule's identifier, e.g. "2025/monthly_withholding"
func (s *BracketSchedule) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Kind returns the legal table the schedule models
func (s *BracketSchedule) Kind() ScheduleKind {
	if s == nil {
		return ""
	}
	return s.kind
}

// Len returns the number of brackets
func (s *BracketSchedule) Len() int {
	if s == nil {
		return 0
	}
	return len(s.brackets)
}

// Bracket returns a copy of bracket i
func (s *BracketSchedule) Bracket(i int) Bracket {
	b := s.brackets[i]
	if b.To != nil {
		to := *b.To
		b.To = &to
	}
	return b
}

// Brackets returns a copy of all brackets
func (s *BracketSchedule) Brackets() []Bracket {
	out := make([]Bracket, s.Len())
	for i := range out {
		out[i] = s.Bracket(i)
	}
	return out
}
