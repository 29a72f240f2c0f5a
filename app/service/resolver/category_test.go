package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchCategory(t *testing.T) {
	tests := []struct {
		utterance string
		want      string
	}{
		{"any karaoke tonight?", "Karaoke & Open Mic"},
		{"live music downtown", "Music"},
		{"is there a concert", "Music"},
		{"comedy show please", "Comedy"},
		{"plan me a date", ""},
		{"what's up", ""},
	}

	for _, tt := range tests {
		q := Resolve(tt.utterance, thursday, nil)

		require.Equal(t, tt.want, q.Category, "utterance %q", tt.utterance)
	}
}

func TestMatchCategoryFirstRuleWins(t *testing.T) {
	q := Resolve("comedy or karaoke, whatever", thursday, nil)

	require.Equal(t, "Karaoke & Open Mic", q.Category)
}

// Substring matching is a deliberate policy: a venue name containing a
// category keyword still triggers the filter.
func TestMatchCategorySubstringFalsePositive(t *testing.T) {
	q := Resolve("what's happening at the Music Hall", thursday, nil)

	require.Equal(t, "Music", q.Category)
}
