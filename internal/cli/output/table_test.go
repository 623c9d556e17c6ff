package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workerTable struct{ rows [][]string }

func (w workerTable) Headers() []string { return []string{"Worker ID", "Status"} }
func (w workerTable) Rows() [][]string  { return w.rows }

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	err := PrintTable(&buf, workerTable{rows: [][]string{
		{"worker-a", "IDLE"},
		{"worker-b", "SYNCING"},
	}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "WORKER ID")
	assert.Contains(t, out, "worker-a")
	assert.Contains(t, out, "SYNCING")
	// Borderless style: no frame characters.
	assert.NotContains(t, out, "+--")
	assert.NotContains(t, out, "|")
}

func TestPrintTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, workerTable{}))
	assert.Contains(t, buf.String(), "WORKER ID")
}
