package blog

import (
	"strings"
	"testing"
)

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty content still takes a minute", "", 1},
		{"one word", "hello", 1},
		{"exactly 200 words", strings.Repeat("word ", 200), 1},
		{"201 words rounds up", strings.Repeat("word ", 201), 2},
		{"400 words", strings.Repeat("word ", 400), 2},
		{"mixed whitespace counts words, not spaces", "one\ttwo\nthree   four", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadingTime(tt.content); got != tt.want {
				t.Errorf("ReadingTime() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadingTime_MatchesWordCountFormula(t *testing.T) {
	for _, words := range []int{0, 1, 199, 200, 201, 399, 1000, 4999} {
		content := strings.Repeat("w ", words)
		want := (words + 199) / 200
		if want < 1 {
			want = 1
		}
		if got := ReadingTime(content); got != want {
			t.Errorf("words=%d: ReadingTime() = %d, want %d", words, got, want)
		}
	}
}
