package compare

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(compSet, "", "  ")
	} else {
		data, err = json.Marshal(compSet)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Formatter renders a comparison set in one output format
type Formatter interface {
	Format(compSet *ComparisonSet) (string, error)
}

type tableAdapter struct{ tf *TableFormatter }

func (a tableAdapter) Format(compSet *ComparisonSet) (string, error) {
	return a.tf.Format(compSet), nil
}

// NewFormatter returns the formatter for table, csv or json
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "", "table", "console":
		return tableAdapter{tf: &TableFormatter{}}, nil
	case "csv":
		return &CSVFormatter{}, nil
	case "json":
		return &JSONFormatter{Pretty: true}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (use table, csv or json)", format)
	}
}
