package tui

import (
	"github.com/rgehrsitz/coltax/internal/compare"
)

// ComparisonCompleteMsg carries the result of one recomputation. Seq identifies
// the input that produced it so late results for stale input are dropped.
type ComparisonCompleteMsg struct {
	Seq int
	Set *compare.ComparisonSet
	Err error
}
