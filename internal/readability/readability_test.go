
package readability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeScenario(t *testing.T) {
	text := "The cat sat on the mat. It was happy."

	assert.Len(t, Words(text), 9)
	assert.Len(t, Sentences(text), 2)

	syllables := 0
	for _, w := range Words(text) {
		syllables += Syllables(w)
	}
	assert.Equal(t, 10, syllables)

	wps := 9.0 / 2.0
	spw := 10.0 / 9.0
	m := Compute(text)
	assert.InDelta(t, 206.835-1.015*wps-84.6*spw, m.ReadingEase, 1e-9)
	assert.InDelta(t, 108.2675, m.ReadingEase, 1e-9)
	assert.InDelta(t, 0.39*wps+11.8*spw-15.59, m.GradeLevel, 1e-9)
}

func TestComputeDegenerate(t *testing.T) {
	for _, text := range []string{"", "   ", "... !!! ???", "123 456."} {
		t.Run(text, func(t *testing.T) {
			m := Compute(text)
			assert.Zero(t, m.ReadingEase)
			assert.Zero(t, m.GradeLevel)
		})
	}
}

func TestComputeUnterminatedSentence(t *testing.T) {
	m := Compute("hello world")
	assert.NotZero(t, m.ReadingEase)
	assert.NotZero(t, m.GradeLevel)
}

func TestSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"", 0},
		{"'", 0},
		{"cat", 1},
		{"the", 1},
		{"make", 1},
		{"happy", 2},
		{"readable", 2},
		{"rhythm", 1},
		{"queue", 1},
		{"don't", 1},
		{"Beautiful", 3},
		{"b", 1},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Syllables(tt.word))
		})
	}
}

func TestWordsSkipNumbersAndPunctuation(t *testing.T) {
	assert.Equal(t, []string{"it's", "o'clock", "ok"}, Words("it's 10 o'clock -- ok?!"))
}

func TestSentencesDropBlankFragments(t *testing.T) {
	assert.Equal(t, []string{"One", "Two", "Three"}, Sentences("One... Two?! Three.  "))
}

func TestMetricsUnclamped(t *testing.T) {
	// one monosyllabic word per sentence pushes reading ease above 100
	m := Compute("Go. Run. Stop.")
	assert.Greater(t, m.ReadingEase, 100.0)
	assert.Less(t, m.GradeLevel, 0.0)
}

func TestHelpersMatchCompute(t *testing.T) {
	text := "Readability formulas estimate difficulty. They are heuristics."
	m := Compute(text)
	assert.Equal(t, m.ReadingEase, ReadingEase(text))
	assert.Equal(t, m.GradeLevel, GradeLevel(text))
}
