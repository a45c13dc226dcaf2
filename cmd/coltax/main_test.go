package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI in an isolated directory and returns stdout and stderr
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	for _, key := range []string{"COLTAX_YEAR", "COLTAX_PARAMS", "COLTAX_FORMAT", "COLTAX_LOG_LEVEL", "COLTAX_ENV"} {
		t.Setenv(key, "")
	}

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "coltax", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	out, _, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Colombian")
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{"compare", "simple", "withholding", "annual", "net-to-gross", "validate", "version"}

	registered := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, registered[name], "missing command %s", name)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "coltax dev")
}

func TestCompareCommand_Table(t *testing.T) {
	out, _, err := run(t, "compare", "8.500.000")
	require.NoError(t, err)
	assert.Contains(t, out, "COMPENSATION REGIME COMPARISON")
	assert.Contains(t, out, "Employment contract")
	assert.Contains(t, out, "bundled 2025")
}

func TestCompareCommand_JSON(t *testing.T) {
	out, _, err := run(t, "compare", "8500000", "--format", "json", "--goal", "tax")
	require.NoError(t, err)

	var set struct {
		Goal          string            `json:"goal"`
		Ranked        []json.RawMessage `json:"ranked"`
		NotApplicable []json.RawMessage `json:"notApplicable"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.Equal(t, "minimize_tax", set.Goal)
	assert.Len(t, append(set.Ranked, set.NotApplicable...), 4)
	// 8.5M cannot pay the integral salary floor
	assert.NotEmpty(t, set.NotApplicable)
}

func TestCompareCommand_CSV(t *testing.T) {
	out, _, err := run(t, "compare", "12000000", "--mode", "gross", "-f", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Rank,Regime,"))
}

func TestCompareCommand_DetailedFormats(t *testing.T) {
	out, _, err := run(t, "compare", "8500000", "--format", "verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "DETAILED COMPENSATION ANALYSIS")
	assert.Contains(t, out, "TAXABLE BASE:")

	out, _, err = run(t, "compare", "8500000", "-f", "html")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
}

func TestCompareCommand_InvalidAmountIsNotApplicable(t *testing.T) {
	for _, raw := range []string{"abc", "0"} {
		out, _, err := run(t, "compare", raw)
		require.NoError(t, err)
		assert.Contains(t, out, "Not applicable")
	}
}

func TestCompareCommand_BadFlags(t *testing.T) {
	_, _, err := run(t, "compare", "8500000", "--mode", "weekly")
	assert.Error(t, err)

	_, _, err = run(t, "compare", "8500000", "--goal", "fame")
	assert.Error(t, err)

	_, _, err = run(t, "compare", "8500000", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")

	_, _, err = run(t, "compare", "8500000", "--year", "1999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not bundled")
}

func TestCompareCommand_DebugLogsToStderr(t *testing.T) {
	out, errOut, err := run(t, "compare", "8500000", "--debug")
	require.NoError(t, err)
	assert.Contains(t, errOut, "procedure 1")
	assert.NotContains(t, out, "procedure 1")
}

func TestSimpleCommand(t *testing.T) {
	out, _, err := run(t, "simple", "20.000.000", "--group", "educacion_salud")
	require.NoError(t, err)
	assert.Contains(t, out, "SIMPLE regime")
	assert.Contains(t, out, "Independent contractor")
	assert.NotContains(t, out, "Integral salary")
}

func TestSimpleCommand_AllGroups(t *testing.T) {
	out, _, err := run(t, "simple", "10000000", "--all-groups")
	require.NoError(t, err)
	for _, group := range []string{"tiendas_peluquerias", "comercio_servicios_tecnicos", "profesiones_liberales", "comidas_transporte", "educacion_salud"} {
		assert.Contains(t, out, group)
	}
}

func TestWithholdingCommand(t *testing.T) {
	out, _, err := run(t, "withholding", "1423500")
	require.NoError(t, err)
	assert.Contains(t, out, "Transport subsidy included: $200.000")
	assert.Contains(t, out, "Taxable base")

	out, _, err = run(t, "withholding", "20000000", "--contractor", "--dependents", "--housing-interest", "1.000.000")
	require.NoError(t, err)
	assert.NotContains(t, out, "Transport subsidy")
	assert.Contains(t, out, "Withholding")
}

func TestWithholdingCommand_JSON(t *testing.T) {
	out, _, err := run(t, "withholding", "9000000", "-f", "json")
	require.NoError(t, err)

	var wh map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &wh))
	assert.Contains(t, wh, "withholding")
	assert.Contains(t, wh, "base")
}

func TestWithholdingCommand_BadDeduction(t *testing.T) {
	out, _, err := run(t, "withholding", "9000000", "--prepaid-medicine", "lots")
	require.NoError(t, err)
	assert.Contains(t, out, "Not applicable")
}

func TestAnnualCommand(t *testing.T) {
	out, _, err := run(t, "annual", "5000000")
	require.NoError(t, err)
	assert.Contains(t, out, "ANNUAL RECONCILIATION")
	assert.Contains(t, out, "Service bonus")

	out, _, err = run(t, "annual", "15000000", "--withheld", "1000", "--months", "6", "-f", "json")
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "additional_owed", rec["outcome"])

	_, _, err = run(t, "annual", "5000000", "--months", "13")
	assert.Error(t, err)
}

func TestNetToGrossCommand(t *testing.T) {
	out, _, err := run(t, "net-to-gross", "6000000", "--regime", "simple")
	require.NoError(t, err)
	assert.Contains(t, out, "NET-TO-GROSS BY REGIME")

	_, _, err = run(t, "net-to-gross", "6000000", "--regime", "barter")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, _, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Tax year 2025 parameters (bundled 2025) are valid")
	assert.Contains(t, out, "profesiones_liberales")

	_, _, err = run(t, "validate", "missing.yaml")
	assert.Error(t, err)
}
