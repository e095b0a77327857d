package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energyreport/internal/dataprocessing"
)

func TestWriteCSV(t *testing.T) {
	tempDir := t.TempDir()
	writer := NewCSVWriter(filepath.Join(tempDir, "nested"))

	path, err := writer.WriteCSV("out.csv", WriteOptions{
		Headers: []string{"a", "b"},
		Records: [][]string{{"1", "x,y"}, {"2", `say "hi"`}},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "nested", "out.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,\"x,y\"\n2,\"say \"\"hi\"\"\"\n", string(content))
}

func TestWritePlaceholders(t *testing.T) {
	tempDir := t.TempDir()
	writer := NewCSVWriter(tempDir)

	tokens := []string{"{{site_name}}", "{{capital_cost_gbp}}"}
	values := []string{"Acme, Unit 4", "(£1,500)"}

	path, err := writer.WritePlaceholders("acme.placeholders.csv", tokens, values)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, content[:3])

	// The dump must read back through the report parser unchanged.
	table := dataprocessing.Parse(string(content))
	require.Len(t, table.Records, 2)
	assert.Equal(t, "Acme, Unit 4", table.Records[0].Get("value"))
	assert.Equal(t, "(£1,500)", table.Records[1].Get("value"))
}

func TestWritePlaceholdersMismatch(t *testing.T) {
	writer := NewCSVWriter(t.TempDir())
	_, err := writer.WritePlaceholders("x.csv", []string{"a"}, nil)
	assert.Error(t, err)
}
