package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateEnd(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "exact", 5, "exact"},
		{"truncated", "a longer string", 8, "a longe…"},
		{"zero limit", "anything", 0, ""},
		{"limit one", "anything", 1, "…"},
		{"unicode safe", "pemupukan padi sawah", 10, "pemupukan…"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateEnd(tt.in, tt.limit))
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"zero limit", "anything", 0, ""},
		{"limit one", "anything", 1, "…"},
		{"keeps both ends", "https://example.com/watch?v=abc123", 15, "https:/…=abc123"},
		{"empty", "", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateMiddle(tt.in, tt.limit)
			if tt.in != "" && len([]rune(tt.in)) > tt.limit && tt.limit > 1 {
				assert.Len(t, []rune(got), tt.limit)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
