package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses whitespace runs",
			in:   "May  1   May 2    Netflix.Com   549.00",
			want: "May 1 May 2 Netflix.Com 549.00",
		},
		{
			name: "canonicalizes spaced currency marker",
			in:   "U . S . Dollar 14.95 866.84",
			want: "U.S.Dollar 14.95 866.84",
		},
		{
			name: "canonicalizes undotted currency marker",
			in:   "US Dollar 14.95 866.84",
			want: "U.S.Dollar 14.95 866.84",
		},
		{
			name: "canonicalizes half-dotted currency marker",
			in:   "U.S Dollar 9.99 580.11",
			want: "U.S.Dollar 9.99 580.11",
		},
		{
			name: "inserts space after run-together month",
			in:   "October1 October2 Spotify 149.00",
			want: "October 1 October 2 Spotify 149.00",
		},
		{
			name: "inserts space before run-together month",
			in:   "15September Payment -Thank You -5,000.00",
			want: "15 September Payment -Thank You -5,000.00",
		},
		{
			name: "closes gaps inside numbers",
			in:   "May 1 May 2 Groceries 2 , 337 . 48",
			want: "May 1 May 2 Groceries 2,337.48",
		},
		{
			name: "splits description glued to trailing amount",
			in:   "May 1 May 2 Netflix.Com549.00",
			want: "May 1 May 2 Netflix.Com 549.00",
		},
		{
			name: "splits description glued to negative amount",
			in:   "May 1 May 2 Reversal-5,000.00",
			want: "May 1 May 2 Reversal -5,000.00",
		},
		{
			name: "lowercase month is canonicalized",
			in:   "october3 october4 Audible US",
			want: "October 3 October 4 Audible US",
		},
		{
			name: "empty line stays empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLine(tt.in))
		})
	}
}

// Re-normalizing must be a no-op; the matchers rely on stable spacing.
func TestNormalizeLine_Idempotent(t *testing.T) {
	lines := []string{
		"May  1   May 2 Netflix.Com549.00",
		"U . S . Dollar 14 . 95 866 . 84",
		"October1 October2 Spotify 149.00",
		"15September Payment -Thank You -5,000.00",
		"BPI GOLD REWARDS CARD",
		"plain text with no artifacts",
	}

	for _, line := range lines {
		once := NormalizeLine(line)
		assert.Equal(t, once, NormalizeLine(once), "line %q", line)
	}
}
