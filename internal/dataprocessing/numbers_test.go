package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{name: "integer", input: "42", want: 42, wantOK: true},
		{name: "thousands separators", input: "1,234.5", want: 1234.5, wantOK: true},
		{name: "surrounding spaces", input: "  -7.25 ", want: -7.25, wantOK: true},
		{name: "scientific", input: "1.5E+3", want: 1500, wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "dash", input: "-", wantOK: false},
		{name: "null", input: "null", wantOK: false},
		{name: "null upper case", input: "NULL", wantOK: false},
		{name: "text", input: "abc", wantOK: false},
		{name: "currency symbol", input: "£100", wantOK: false},
		{name: "not a number", input: "NaN", wantOK: false},
		{name: "infinity", input: "Inf", wantOK: false},
		{name: "overflow", input: "1e400", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToNumber(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestExpandScientific(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "1.23E+2", expected: "123"},
		{input: "1.1E+9", expected: "1100000000"},
		{input: "1.23456789012E+12", expected: "1234567890120"},
		{input: "1.2345E+2", expected: "123.45"},
		{input: "-4e2", expected: "-400"},
		{input: "+5E0", expected: "5"},
		{input: "1.5E-3", expected: "0.0015"},
		{input: "12E-1", expected: "1.2"},
		{input: " 1E2 ", expected: "100"},
		{input: "123", expected: "123"},
		{input: "", expected: ""},
		{input: "abc", expected: "abc"},
		{input: "1.2.3E4", expected: "1.2.3E4"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandScientific(tt.input))
		})
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 0.13, RoundTo(0.125, 2))
	assert.Equal(t, -0.13, RoundTo(-0.125, 2))
	assert.Equal(t, 200.0, RoundTo(200, 2))
	assert.Equal(t, 12.3, RoundTo(12.345, 1))
	assert.Equal(t, 3.0, RoundTo(2.5, 0))
}
