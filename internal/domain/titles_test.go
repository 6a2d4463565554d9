package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTitle(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected Gender
	}{
		{
			name:     "male title",
			token:    "Sr.",
			expected: GenderMale,
		},
		{
			name:     "female title",
			token:    "Sra.",
			expected: GenderFemale,
		},
		{
			name:     "case insensitive",
			token:    "SENHORA",
			expected: GenderFemale,
		},
		{
			name:     "trailing period optional",
			token:    "Dr",
			expected: GenderMale,
		},
		{
			name:     "extra trailing period tolerated",
			token:    "Miss.",
			expected: GenderFemale,
		},
		{
			name:     "english male title",
			token:    "Mr.",
			expected: GenderMale,
		},
		{
			name:     "english female title",
			token:    "Mrs.",
			expected: GenderFemale,
		},
		{
			name:     "gender-neutral title in both sets",
			token:    "CEO",
			expected: GenderUnknown,
		},
		{
			name:     "overlapping rank title",
			token:    "Presidente",
			expected: GenderUnknown,
		},
		{
			name:     "plain first name",
			token:    "Maria",
			expected: GenderUnknown,
		},
		{
			name:     "empty token",
			token:    "",
			expected: GenderUnknown,
		},
		{
			name:     "bare period",
			token:    ".",
			expected: GenderUnknown,
		},
		{
			name:     "surrounding whitespace",
			token:    "  Dra.  ",
			expected: GenderFemale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveTitle(tt.token))
		})
	}
}

func TestResolveTitle_IsPure(t *testing.T) {
	// Same token, same answer, every time.
	for range 3 {
		assert.Equal(t, GenderFemale, ResolveTitle("Madame"))
	}
}
