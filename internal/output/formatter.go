package output

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/coltax/internal/compare"
)

// Formatter renders a comparison set in one output format
type Formatter interface {
	Name() string
	Format(set *compare.ComparisonSet) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(set *compare.ComparisonSet) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(set *compare.ComparisonSet) ([]byte, error) {
	return f.F(set)
}

// fromCompare wraps one of the compare package formatters
func fromCompare(name string) Formatter {
	return FormatterFunc{ID: name, F: func(set *compare.ComparisonSet) ([]byte, error) {
		f, err := compare.NewFormatter(name)
		if err != nil {
			return nil, err
		}
		s, err := f.Format(set)
		return []byte(s), err
	}}
}

var registry = map[string]Formatter{
	"table":   fromCompare("table"),
	"csv":     fromCompare("csv"),
	"json":    fromCompare("json"),
	"verbose": VerboseFormatter{},
	"html":    HTMLFormatter{},
}

var aliases = map[string]string{
	"console":         "table",
	"console-verbose": "verbose",
	"detailed":        "verbose",
}

// GetFormatterByName returns the formatter for a name or alias, nil when unknown
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "table"
	}
	if target, ok := aliases[name]; ok {
		name = target
	}
	return registry[name]
}

// AvailableFormatterNames lists the registered formatters in sorted order
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases in sorted order
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
