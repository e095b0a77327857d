package dataprocessing

import (
	"strings"
)

// candidateDelimiters are the only separators Parse will consider. Order matters:
// on equal counts the earlier candidate wins, so comma is the fallback.
var candidateDelimiters = []rune{',', '\t', ';'}

const quote = '"'

// Parse tokenizes delimited text into a Table. The delimiter is detected once
// from the header line and applied to every row. Quoted fields may contain
// delimiters, newlines and doubled quotes. Parse never fails: unterminated
// quotes are flushed as the final field at end of input.
func Parse(text string) *Table {
	text = strings.TrimPrefix(text, "\ufeff")

	lines := splitLines(text)
	if len(lines) == 0 {
		return &Table{Delimiter: candidateDelimiters[0]}
	}

	delimiter := DetectDelimiter(lines[0])
	header := SplitFields(lines[0], delimiter)

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, SplitFields(line, delimiter))
	}

	return newTable(delimiter, header, rows)
}

// splitLines breaks text into logical lines. A newline only terminates a line
// outside quotes. Quote characters are kept verbatim so SplitFields can apply
// the same escaping rules; a trailing carriage return is removed from each line
// and a final whitespace-only line is dropped.
func splitLines(text string) []string {
	var (
		lines    []string
		current  strings.Builder
		inQuotes bool
	)

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == quote:
			current.WriteRune(c)
			if i+1 < len(runes) && runes[i+1] == quote {
				// Escaped quote: keep both so the field splitter sees the pair.
				current.WriteRune(quote)
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == '\n' && !inQuotes:
			lines = append(lines, strings.TrimSuffix(current.String(), "\r"))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}

	if rest := current.String(); strings.TrimSpace(rest) != "" {
		lines = append(lines, strings.TrimSuffix(rest, "\r"))
	}

	return lines
}

// DetectDelimiter counts each candidate delimiter outside quotes in line and
// returns the one with the strictly highest count. Ties (including no
// delimiter at all) resolve to the earliest candidate.
func DetectDelimiter(line string) rune {
	best := candidateDelimiters[0]
	bestCount := -1
	for _, d := range candidateDelimiters {
		if n := countDelimiter(line, d); n > bestCount {
			best = d
			bestCount = n
		}
	}
	return best
}

func countDelimiter(line string, delimiter rune) int {
	count := 0
	quoted := false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == quote:
			if i+1 < len(runes) && runes[i+1] == quote {
				i++
				continue
			}
			quoted = !quoted
		case c == delimiter && !quoted:
			count++
		}
	}
	return count
}

// SplitFields splits one logical line on delimiter, honoring quotes. A doubled
// quote yields one literal quote character. Every field is whitespace-trimmed.
func SplitFields(line string, delimiter rune) []string {
	var (
		fields []string
		value  strings.Builder
		quoted bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == quote:
			if i+1 < len(runes) && runes[i+1] == quote {
				value.WriteRune(quote)
				i++
				continue
			}
			quoted = !quoted
		case c == delimiter && !quoted:
			fields = append(fields, strings.TrimSpace(value.String()))
			value.Reset()
		default:
			value.WriteRune(c)
		}
	}
	fields = append(fields, strings.TrimSpace(value.String()))

	return fields
}
