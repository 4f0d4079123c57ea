package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSeriesName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"episode with season marker", "Show A - S01E02 - Pilot", "Show A"},
		{"single separator", "Show B - Episode 1", "Show B"},
		{"no separator", "Standalone Special", "Standalone Special"},
		{"surrounding whitespace", "  Show C - E03", "Show C"},
		{"cjk title", "葬送的芙莉莲 - S01E05 - 魔法使的杀法", "葬送的芙莉莲"},
		{"hyphen without spaces stays intact", "Re-Zero", "Re-Zero"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSeriesName(tt.in))
		})
	}
}

func TestExtractSeriesName_Idempotent(t *testing.T) {
	inputs := []string{"Show A - S01E02 - Pilot", "Standalone Special", "Re-Zero"}
	for _, in := range inputs {
		once := ExtractSeriesName(in)
		assert.Equal(t, once, ExtractSeriesName(once), "input %q", in)
	}
}
