package fingerprints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   []Condition
		errors bool
	}{
		{name: "empty", input: "", want: nil},
		{name: "whitespace only", input: "   ", want: nil},
		{
			name:  "exact match",
			input: `name=="WordPress"`,
			want:  []Condition{{Field: "name", Value: "WordPress", Exact: true}},
		},
		{
			name:  "fuzzy match",
			input: `name="word"`,
			want:  []Condition{{Field: "name", Value: "word"}},
		},
		{
			name:  "unquoted value",
			input: `severity==high`,
			want:  []Condition{{Field: "severity", Value: "high", Exact: true}},
		},
		{
			name:  "multiple terms",
			input: `name="wp" && rule="body="`,
			want: []Condition{
				{Field: "name", Value: "wp"},
				{Field: "rule", Value: "body="},
			},
		},
		{name: "no operator", input: "name", errors: true},
		{name: "empty field", input: `="x"`, errors: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilter(tt.input)
			if tt.errors {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
