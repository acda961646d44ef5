
package classifier

import (
	_ "embed"
	"strings"
)

//go:embed english_stopwords.txt
var englishStopWordsRaw string

var englishStopWords = func() map[string]struct{} {
	words := strings.Fields(englishStopWordsRaw)
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
