package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	valid := map[string]Format{
		"":       FormatTable,
		"table":  FormatTable,
		"TABLE":  FormatTable,
		"json":   FormatJSON,
		"JSON":   FormatJSON,
		"yaml":   FormatYAML,
		"yml":    FormatYAML,
		" json ": FormatJSON,
	}
	for input, want := range valid {
		got, err := ParseFormat(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	for _, input := range []string{"xml", "csv", "tables"} {
		_, err := ParseFormat(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "table", FormatTable.String())
}

func TestPrinterColorizedStatus(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, FormatTable, true).Success("request submitted")

	out := buf.String()
	assert.Contains(t, out, "request submitted")
	assert.Contains(t, out, ansiGreen)
	assert.Contains(t, out, ansiReset)
}

func TestPrinterPlainStatus(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatTable, false)
	p.Error("request rejected")
	p.Warning("worker stale")

	out := buf.String()
	assert.NotContains(t, out, "\033[")
	assert.Equal(t, "request rejected\nworker stale\n", out)
}
