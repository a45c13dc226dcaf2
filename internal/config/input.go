package config

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed years/*.yaml
var builtinYears embed.FS

// TaxYearFile is the on-disk shape of a tax-year parameter file
type TaxYearFile struct {
	Year         int                     `yaml:"year"`
	UVT          decimal.Decimal         `yaml:"uvt"`
	RoundingUnit decimal.Decimal         `yaml:"rounding_unit"`
	Schedules    SchedulesFile           `yaml:"schedules"`
	Caps         CapsFile                `yaml:"caps"`
	Parameters   domain.RegimeParameters `yaml:"parameters"`
}

// SchedulesFile holds the raw bracket tables
type SchedulesFile struct {
	MonthlyWithholding []domain.BracketInput `yaml:"monthly_withholding"`
	AnnualIncomeTax    []domain.BracketInput `yaml:"annual_income_tax"`
	Simple             SimpleFile            `yaml:"simple"`
}

// SimpleFile describes the SIMPLE table: one set of lower bounds shared by every
// business-activity group, and one rate per bound for each group
type SimpleFile struct {
	Bounds []decimal.Decimal            `yaml:"bounds"`
	Groups map[string][]decimal.Decimal `yaml:"groups"`
}

// CapsFile holds the monthly and annual cap sets
type CapsFile struct {
	Monthly domain.CapSet `yaml:"monthly"`
	Annual  domain.CapSet `yaml:"annual"`
}

// InputParser handles parsing of tax-year parameter files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a tax year from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.TaxYear, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// LoadYear loads one of the tax years shipped with the binary
func (ip *InputParser) LoadYear(year int) (*domain.TaxYear, error) {
	data, err := builtinYears.ReadFile(fmt.Sprintf("years/%d.yaml", year))
	if err != nil {
		return nil, fmt.Errorf("tax year %d is not bundled (available: %v)", year, AvailableYears())
	}
	return ip.Parse(data)
}

// Parse decodes and validates a tax-year document
func (ip *InputParser) Parse(data []byte) (*domain.TaxYear, error) {
	var file TaxYearFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ty, err := ip.BuildTaxYear(&file)
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return ty, nil
}

// BuildTaxYear validates a decoded file and builds the immutable schedules
func (ip *InputParser) BuildTaxYear(file *TaxYearFile) (*domain.TaxYear, error) {
	if file.Year <= 0 {
		return nil, fmt.Errorf("year is required")
	}
	if !file.UVT.IsPositive() {
		return nil, fmt.Errorf("uvt must be positive")
	}
	if file.RoundingUnit.IsNegative() {
		return nil, fmt.Errorf("rounding unit cannot be negative")
	}
	if err := ip.validateCaps("monthly", &file.Caps.Monthly); err != nil {
		return nil, err
	}
	if err := ip.validateCaps("annual", &file.Caps.Annual); err != nil {
		return nil, err
	}
	if err := ip.validateParameters(&file.Parameters); err != nil {
		return nil, fmt.Errorf("parameters validation failed: %w", err)
	}

	monthly, err := domain.NewBracketSchedule(scheduleName(file.Year, domain.ScheduleMonthlyWithholding, ""), domain.ScheduleMonthlyWithholding, file.Schedules.MonthlyWithholding)
	if err != nil {
		return nil, err
	}
	annual, err := domain.NewBracketSchedule(scheduleName(file.Year, domain.ScheduleAnnualIncomeTax, ""), domain.ScheduleAnnualIncomeTax, file.Schedules.AnnualIncomeTax)
	if err != nil {
		return nil, err
	}
	simple, err := ip.buildSimpleSchedules(file.Year, file.Schedules.Simple)
	if err != nil {
		return nil, err
	}

	return &domain.TaxYear{
		Year:               file.Year,
		UVT:                file.UVT,
		RoundingUnit:       file.RoundingUnit,
		MonthlyWithholding: monthly,
		AnnualIncomeTax:    annual,
		Simple:             simple,
		MonthlyCaps:        file.Caps.Monthly,
		AnnualCaps:         file.Caps.Annual,
		Params:             file.Parameters,
	}, nil
}

// buildSimpleSchedules expands the shared bounds into one schedule per group
func (ip *InputParser) buildSimpleSchedules(year int, sf SimpleFile) (map[string]*domain.BracketSchedule, error) {
	if len(sf.Groups) == 0 {
		return nil, fmt.Errorf("at least one SIMPLE business-activity group is required")
	}

	schedules := make(map[string]*domain.BracketSchedule, len(sf.Groups))
	for group, rates := range sf.Groups {
		name := scheduleName(year, domain.ScheduleSimple, group)
		if len(rates) != len(sf.Bounds) {
			return nil, &domain.InvalidScheduleError{
				Schedule: name,
				Reason:   fmt.Sprintf("%d rates for %d bounds", len(rates), len(sf.Bounds)),
			}
		}

		inputs := make([]domain.BracketInput, len(sf.Bounds))
		for i, from := range sf.Bounds {
			inputs[i] = domain.BracketInput{From: from, Rate: rates[i]}
			if i+1 < len(sf.Bounds) {
				to := sf.Bounds[i+1]
				inputs[i].To = &to
			}
		}

		schedule, err := domain.NewBracketSchedule(name, domain.ScheduleSimple, inputs)
		if err != nil {
			return nil, err
		}
		schedules[group] = schedule
	}
	return schedules, nil
}

// validateCaps checks one cap set
func (ip *InputParser) validateCaps(scale string, caps *domain.CapSet) error {
	rates := map[string]decimal.Decimal{
		"dependent_rate": caps.DependentRate,
		"exempt_rate":    caps.ExemptRate,
		"global_rate":    caps.GlobalRate,
	}
	for name, rate := range rates {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s caps: %s must be between 0 and 1", scale, name)
		}
	}

	if caps.ExemptCap.Kind != domain.CapAbsolute {
		return fmt.Errorf("%s caps: exempt_cap must be an absolute cap", scale)
	}
	if caps.GlobalCap.Kind != domain.CapAbsolute {
		return fmt.Errorf("%s caps: global_cap must be an absolute cap", scale)
	}

	groups := map[string][]domain.CapRule{
		"dependents":        caps.Dependents,
		"housing_interest":  caps.HousingInterest,
		"prepaid_medicine":  caps.PrepaidMedicine,
		"voluntary_pension": caps.VoluntaryPension,
		"exempt_cap":        {caps.ExemptCap},
		"global_cap":        {caps.GlobalCap},
	}
	for name, rules := range groups {
		for i, rule := range rules {
			if err := validateCapRule(rule); err != nil {
				return fmt.Errorf("%s caps: %s rule %d: %w", scale, name, i, err)
			}
		}
	}
	return nil
}

func validateCapRule(rule domain.CapRule) error {
	switch rule.Kind {
	case domain.CapPercentage:
		if rule.Rate.IsNegative() {
			return fmt.Errorf("percentage cap rate cannot be negative")
		}
	case domain.CapAbsolute:
		if rule.Units.IsNegative() {
			return fmt.Errorf("absolute cap units cannot be negative")
		}
	default:
		return fmt.Errorf("unknown cap kind %q", rule.Kind)
	}
	return nil
}

// validateParameters checks the regime constants
func (ip *InputParser) validateParameters(p *domain.RegimeParameters) error {
	if !p.MinimumWage.IsPositive() {
		return fmt.Errorf("minimum wage must be positive")
	}
	if p.TransportSubsidy.IsNegative() {
		return fmt.Errorf("transport subsidy cannot be negative")
	}
	if !p.SubsidyThresholdMultiple.IsPositive() {
		return fmt.Errorf("subsidy threshold multiple must be positive")
	}

	rates := map[string]decimal.Decimal{
		"employer.health":                     p.Employer.Health,
		"employer.pension":                    p.Employer.Pension,
		"employer.occupational_risk":          p.Employer.OccupationalRisk,
		"employer.family_fund":                p.Employer.FamilyFund,
		"employer.icbf":                       p.Employer.ICBF,
		"employer.sena":                       p.Employer.SENA,
		"employee.health":                     p.Employee.Health,
		"employee.pension":                    p.Employee.Pension,
		"fringe.severance":                    p.Fringe.Severance,
		"fringe.severance_interest":           p.Fringe.SeveranceInterest,
		"fringe.service_bonus":                p.Fringe.ServiceBonus,
		"fringe.vacation":                     p.Fringe.Vacation,
		"integral.contribution_base_factor":   p.Integral.ContributionBaseFactor,
		"contractor.contribution_base_factor": p.Contractor.ContributionBaseFactor,
		"contractor.health":                   p.Contractor.Health,
		"contractor.pension":                  p.Contractor.Pension,
		"contractor.occupational_risk":        p.Contractor.OccupationalRisk,
		"contractor.vat_rate":                 p.Contractor.VATRate,
	}
	names := make([]string, 0, len(rates))
	for name := range rates {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rate := rates[name]
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}

	if !p.Integral.FloorMultiple.IsPositive() {
		return fmt.Errorf("integral floor multiple must be positive")
	}
	if !p.Contractor.VATThresholdUnits.IsPositive() {
		return fmt.Errorf("contractor VAT threshold must be positive")
	}
	if !p.Simple.TurnoverCeilingUnits.IsPositive() {
		return fmt.Errorf("SIMPLE turnover ceiling must be positive")
	}

	for i := 1; i < len(p.Solidarity); i++ {
		if !p.Solidarity[i].FromMultiple.GreaterThan(p.Solidarity[i-1].FromMultiple) {
			return fmt.Errorf("solidarity tiers must be in increasing order")
		}
	}
	return nil
}

func scheduleName(year int, kind domain.ScheduleKind, group string) string {
	name := strconv.Itoa(year) + "/" + string(kind)
	if group != "" {
		name += "/" + group
	}
	return name
}

// AvailableYears lists the bundled tax years
func AvailableYears() []int {
	entries, err := builtinYears.ReadDir("years")
	if err != nil {
		return nil
	}
	var years []int
	for _, e := range entries {
		y, err := strconv.Atoi(strings.TrimSuffix(e.Name(), ".yaml"))
		if err == nil {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}
