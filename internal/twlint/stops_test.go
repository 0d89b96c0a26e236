package twlint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStopSelector(t *testing.T) {
	tests := []struct {
		selector string
		want     []float64
	}{
		{"from", []float64{0}},
		{"to", []float64{100}},
		{"50%", []float64{50}},
		{"0%, 100%", []float64{0, 100}},
		{"0%,50%,100%", []float64{0, 50, 100}},
		{"12.5%", []float64{12.5}},
		{".5%", []float64{0.5}},
		{" 33% ", []float64{33}},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			got, err := ParseStopSelector(tt.selector)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStopSelectorErrors(t *testing.T) {
	tests := []struct {
		selector string
		wantErr  string
	}{
		{"150%", "outside 0%-100%"},
		{"50", `"50" is not a percentage`},
		{"-10%", "is not a percentage"},
		{"half", "is not a percentage"},
		{"from, 50%", `"from" may only be used alone, write 0%`},
		{"50%, to", `"to" may only be used alone, write 100%`},
		{"0%,,100%", "empty entry"},
		{"", "empty stop selector"},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			_, err := ParseStopSelector(tt.selector)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "0%", formatOffset(0))
	assert.Equal(t, "12.5%", formatOffset(12.5))
	assert.Equal(t, "100%", formatOffset(100))
}
