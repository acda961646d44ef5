
package readability

import (
	"regexp"
	"strings"
)

var (
	wordRe     = regexp.MustCompile(`[a-zA-Z']+`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)
	nonLetters = regexp.MustCompile(`[^a-z]`)
)

// Metrics are the Flesch scores of a text. Both are zero when the text has
// no words or no sentences.
type Metrics struct {
	ReadingEase float64
	GradeLevel  float64
}

// Compute returns Flesch Reading Ease and Flesch-Kincaid Grade for text.
func Compute(text string) Metrics {
	words := Words(text)
	sentences := Sentences(text)
	if len(words) == 0 || len(sentences) == 0 {
		return Metrics{}
	}

	syllables := 0
	for _, w := range words {
		syllables += Syllables(w)
	}

	wps := float64(len(words)) / float64(len(sentences))
	spw := float64(syllables) / float64(len(words))

	return Metrics{
		ReadingEase: 206.835 - 1.015*wps - 84.6*spw,
		GradeLevel:  0.39*wps + 11.8*spw - 15.59,
	}
}

func ReadingEase(text string) float64 { return Compute(text).ReadingEase }

func GradeLevel(text string) float64 { return Compute(text).GradeLevel }

// Words returns the maximal runs of ASCII letters and apostrophes.
func Words(text string) []string {
	return wordRe.FindAllString(text, -1)
}

// Sentences splits on runs of terminal punctuation and drops blank fragments.
func Sentences(text string) []string {
	var out []string
	for _, s := range sentenceRe.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Syllables estimates the syllable count of a word by counting vowel groups.
func Syllables(word string) int {
	w := nonLetters.ReplaceAllString(strings.ToLower(word), "")
	if w == "" {
		return 0
	}

	count := 0
	prevVowel := false
	for _, ch := range w {
		vowel := isVowel(ch)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	// silent trailing e
	if strings.HasSuffix(w, "e") && count > 1 {
		count--
	}
	return max(count, 1)
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
