package dataprocessing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeRow writes fields the way a spreadsheet export does: fields holding the
// delimiter, a quote or a newline are quoted and inner quotes are doubled.
func encodeRow(fields []string, delimiter rune) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		if strings.ContainsAny(f, string(delimiter)+"\"\n") {
			f = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		}
		out[i] = f
	}
	return strings.Join(out, string(delimiter))
}

func TestParseRoundTrip(t *testing.T) {
	header := []string{"Variable", "Value", "Notes"}
	rows := [][]string{
		{"Site Name", "Acme, Ltd; Unit 4", "tab\tinside"},
		{"Address", "1 High St\nLondon", `she said "hi"`},
		{"MPAN", "1.1E+9", ""},
	}

	for _, delimiter := range []rune{',', '\t', ';'} {
		t.Run(string(delimiter), func(t *testing.T) {
			lines := []string{encodeRow(header, delimiter)}
			for _, row := range rows {
				lines = append(lines, encodeRow(row, delimiter))
			}

			table := Parse(strings.Join(lines, "\n") + "\n")

			assert.Equal(t, delimiter, table.Delimiter)
			assert.Equal(t, header, table.Header)
			require.Len(t, table.Records, len(rows))
			for i, row := range rows {
				assert.Equal(t, row, table.Records[i].Fields)
			}
		})
	}
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected rune
	}{
		{name: "commas beat a single tab", line: "a,b,c,d\te", expected: ','},
		{name: "tabs", line: "a\tb\tc", expected: '\t'},
		{name: "semicolons", line: "a;b;c", expected: ';'},
		{name: "no delimiter falls back to comma", line: "abc", expected: ','},
		{name: "tie resolves to comma", line: "a,b;c", expected: ','},
		{name: "quoted delimiters are ignored", line: `"a,b,c";d;e`, expected: ';'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectDelimiter(tt.line))
		})
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		delimiter rune
		expected  []string
	}{
		{name: "plain", line: "a,b,c", delimiter: ',', expected: []string{"a", "b", "c"}},
		{name: "trims whitespace", line: " a , b ", delimiter: ',', expected: []string{"a", "b"}},
		{name: "doubled quote", line: `"a ""b"" c",d`, delimiter: ',', expected: []string{`a "b" c`, "d"}},
		{name: "empty fields", line: ",,", delimiter: ',', expected: []string{"", "", ""}},
		{name: "quoted delimiter", line: `"x;y";z`, delimiter: ';', expected: []string{"x;y", "z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitFields(tt.line, tt.delimiter))
		})
	}
}

func TestParseEdgeCases(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		table := Parse("")
		assert.Empty(t, table.Header)
		assert.Empty(t, table.Records)
	})

	t.Run("whitespace only", func(t *testing.T) {
		table := Parse("  \n \n")
		assert.Empty(t, table.Records)
	})

	t.Run("header only", func(t *testing.T) {
		table := Parse("a,b\n")
		assert.Equal(t, []string{"a", "b"}, table.Header)
		assert.Empty(t, table.Records)
	})

	t.Run("unterminated quote is flushed", func(t *testing.T) {
		table := Parse("a,b\n\"x,y")
		require.Len(t, table.Records, 1)
		assert.Equal(t, "x,y", table.Records[0].Get("a"))
		assert.Equal(t, "", table.Records[0].Get("b"))
	})

	t.Run("crlf line endings", func(t *testing.T) {
		table := Parse("a,b\r\n1,2\r\n3,4\r\n")
		require.Len(t, table.Records, 2)
		assert.Equal(t, []string{"a", "b"}, table.Header)
		assert.Equal(t, "4", table.Records[1].Get("b"))
	})

	t.Run("byte order mark", func(t *testing.T) {
		table := Parse("\ufeffVariable,Value\nGSP,_C\n")
		assert.True(t, table.HasColumn("Variable"))
		assert.Equal(t, "_C", table.Records[0].Get("Value"))
	})

	t.Run("blank lines between rows are skipped", func(t *testing.T) {
		table := Parse("a\n1\n\n2\n")
		assert.Len(t, table.Records, 2)
	})

	t.Run("short and long rows", func(t *testing.T) {
		table := Parse("a,b,c\n1\n1,2,3,4\n")
		require.Len(t, table.Records, 2)
		assert.Equal(t, []string{"1", "", ""}, table.Records[0].Fields)
		assert.Equal(t, []string{"1", "2", "3"}, table.Records[1].Fields)
	})

	t.Run("duplicate header keeps last column", func(t *testing.T) {
		table := Parse("x,x\n1,2\n")
		assert.Equal(t, "2", table.Records[0].Get("x"))
		assert.Equal(t, map[string]string{"x": "2"}, table.Records[0].Map())
	})
}

func TestRecordFirst(t *testing.T) {
	table := Parse("variable,Variable,Value\n,Site Name,Acme\n")
	require.Len(t, table.Records, 1)

	rec := table.Records[0]
	assert.Equal(t, "Site Name", rec.First("Variable", "variable"))
	assert.Equal(t, "Site Name", rec.First("variable", "Variable"))
	assert.Equal(t, "", rec.First("VARIABLE"))
	assert.Equal(t, "", rec.Get("missing"))
}
