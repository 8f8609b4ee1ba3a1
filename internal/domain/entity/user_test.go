package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{name: "too short", username: "ab", want: false},
		{name: "minimum length", username: "abc", want: true},
		{name: "maximum length", username: strings.Repeat("a", 50), want: true},
		{name: "one over maximum", username: strings.Repeat("a", 51), want: false},
		{name: "empty", username: "", want: false},
		// Bounds count characters, not bytes: 20 CJK runes are 60 bytes.
		{name: "multibyte within bounds", username: strings.Repeat("字", 20), want: true},
		{name: "multibyte too long", username: strings.Repeat("字", 51), want: false},
		{name: "multibyte minimum", username: "日本語", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidUsername(tt.username))
		})
	}
}
