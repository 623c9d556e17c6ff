package cmdutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmsproject/dms/internal/cli/output"
)

// listRenderer implements output.TableRenderer for tests.
type listRenderer struct {
	headers []string
	rows    [][]string
}

func (r listRenderer) Headers() []string { return r.headers }
func (r listRenderer) Rows() [][]string  { return r.rows }

func TestServerURLResolution(t *testing.T) {
	t.Cleanup(func() { Flags.ServerURL = "" })

	Flags.ServerURL = "http://flag:9000"
	t.Setenv("DMS_SERVER", "http://env:9001")
	assert.Equal(t, "http://flag:9000", ServerURL(), "flag wins over env")

	Flags.ServerURL = ""
	assert.Equal(t, "http://env:9001", ServerURL(), "env wins over default")

	t.Setenv("DMS_SERVER", "")
	assert.Equal(t, DefaultServerURL, ServerURL())
}

func TestParseCommaSeparatedList(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"foo", []string{"foo"}},
		{"foo,bar,baz", []string{"foo", "bar", "baz"}},
		{"foo, bar , baz", []string{"foo", "bar", "baz"}},
		{"foo,,bar,", []string{"foo", "bar"}},
		{"foo, , bar", []string{"foo", "bar"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseCommaSeparatedList(tc.input), "input %q", tc.input)
	}
}

func TestTableCellHelpers(t *testing.T) {
	assert.Equal(t, "yes", BoolToYesNo(true))
	assert.Equal(t, "no", BoolToYesNo(false))
	assert.Equal(t, "-", EmptyOr("", "-"))
	assert.Equal(t, "value", EmptyOr("value", "-"))
}

func TestPrintOutputJSON(t *testing.T) {
	Flags.Output = "json"
	var buf bytes.Buffer

	err := PrintOutput(&buf, []string{"foo", "bar"}, false, "No items",
		listRenderer{headers: []string{"NAME"}, rows: [][]string{{"foo"}, {"bar"}}})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "foo")
	assert.Contains(t, buf.String(), "bar")
}

func TestPrintOutputYAML(t *testing.T) {
	Flags.Output = "yaml"
	var buf bytes.Buffer

	err := PrintOutput(&buf, []string{"foo", "bar"}, false, "No items",
		listRenderer{headers: []string{"NAME"}, rows: [][]string{{"foo"}, {"bar"}}})
	require.NoError(t, err)

	assert.Equal(t, "- foo\n- bar\n", buf.String())
}

func TestPrintOutputTableEmpty(t *testing.T) {
	Flags.Output = "table"
	var buf bytes.Buffer

	err := PrintOutput(&buf, []string{}, true, "No items found.",
		listRenderer{headers: []string{"NAME"}})
	require.NoError(t, err)

	assert.Equal(t, "No items found.\n", buf.String())
}

func TestPrintOutputTableWithData(t *testing.T) {
	Flags.Output = "table"
	var buf bytes.Buffer

	err := PrintOutput(&buf, []string{"foo", "bar"}, false, "No items found.",
		listRenderer{headers: []string{"NAME"}, rows: [][]string{{"foo"}, {"bar"}}})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "NAME")
	assert.Contains(t, buf.String(), "foo")
}

func TestGetOutputFormatParsed(t *testing.T) {
	for flag, want := range map[string]output.Format{
		"table": output.FormatTable,
		"json":  output.FormatJSON,
		"yaml":  output.FormatYAML,
	} {
		Flags.Output = flag
		got, err := GetOutputFormatParsed()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	Flags.Output = "invalid"
	_, err := GetOutputFormatParsed()
	assert.Error(t, err)
}

func TestIsColorDisabled(t *testing.T) {
	Flags.NoColor = true
	assert.True(t, IsColorDisabled())

	Flags.NoColor = false
	assert.False(t, IsColorDisabled())
}
