package calculation

import (
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/rs/zerolog"
)

// Engine runs the withholding and reconciliation pipelines for one tax year.
// It holds no state between calls; the TaxYear is read-only.
type Engine struct {
	Year   *domain.TaxYear
	Logger zerolog.Logger
}

// NewEngine creates an engine for a loaded tax year with logging disabled
func NewEngine(year *domain.TaxYear) *Engine {
	return &Engine{
		Year:   year,
		Logger: zerolog.Nop(),
	}
}

// SetLogger replaces the engine logger; nil disables logging
func (e *Engine) SetLogger(logger *zerolog.Logger) {
	if logger == nil {
		e.Logger = zerolog.Nop()
		return
	}
	e.Logger = logger.With().Int("tax_year", e.Year.Year).Logger()
}

// Params is a shortcut to the year's regime parameters
func (e *Engine) Params() domain.RegimeParameters {
	return e.Year.Params
}
