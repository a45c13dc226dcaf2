package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/coltax/internal/compare"
)

// HTMLFormatter produces a standalone HTML comparison report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    compare.FormatCOP,
	"pct":     compare.FormatPercent,
	"outcome": outcomeLabel,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(set *compare.ComparisonSet) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*compare.ComparisonSet
		Assumptions []string
	}{set, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
