package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"pikachu", "Pikachu"},
		{"mr-mime", "Mr-mime"},
		{"", ""},
		{"Already", "Already"},
		{"électrique", "Électrique"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Title(tt.in), "Title(%q)", tt.in)
	}
}

func TestStatLabel(t *testing.T) {
	assert.Equal(t, "Special attack", StatLabel("special-attack"))
	assert.Equal(t, "Special defense", StatLabel("special-defense"))
	assert.Equal(t, "Hp", StatLabel("hp"))
}

func TestFormatHeightWeight(t *testing.T) {
	assert.Equal(t, "0.7 m", FormatHeight(7))
	assert.Equal(t, "6.9 kg", FormatWeight(69))
	assert.Equal(t, "2 m", FormatHeight(20))
	assert.Equal(t, "100 kg", FormatWeight(1000))
	assert.Equal(t, "0 kg", FormatWeight(0))
}
