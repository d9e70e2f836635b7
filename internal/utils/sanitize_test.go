package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Plain text untouched", input: "Graduation Gown", want: "Graduation Gown"},
		{name: "Script removed", input: `Gown<script>alert(1)</script>`, want: "Gown"},
		{name: "Tags stripped", input: `<b>Scrubs</b> & Cap`, want: "Scrubs & Cap"},
		{name: "Whitespace trimmed", input: "  Hood  ", want: "Hood"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeText(tc.input))
		})
	}
}
