package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  string
	}{
		{"empty body rounds up to one minute", 0, "1 min read"},
		{"short body", 10, "1 min read"},
		{"exactly one minute", 200, "1 min read"},
		{"just over one minute", 201, "2 min read"},
		{"five minutes", 1000, "5 min read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadingTime(words(tt.words)))
		})
	}
}

func TestReadingMinutes_MonotonicInWordCount(t *testing.T) {
	previous := 0
	for n := 0; n <= 2000; n += 37 {
		minutes := ReadingMinutes(words(n))
		assert.GreaterOrEqual(t, minutes, previous, "reading time decreased at %d words", n)
		previous = minutes
	}
}

func TestReadingMinutes_IgnoresWhitespaceRuns(t *testing.T) {
	assert.Equal(t, ReadingMinutes("a b c"), ReadingMinutes("  a\n\n\tb   c  "))
}
