
package classifier

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"content-quality-analyzer/internal/models"
)

// Linear is a TF-IDF vectorizer feeding a binary logistic regression.
// It is immutable after New and safe for concurrent use.
type Linear struct {
	features     []string
	idf          []float64
	coefficients []float64
	intercept    float64
	ngramMin     int
	ngramMax     int
	vocab        map[string]int
	stop         map[string]struct{}
}

func New(a Artifact) (*Linear, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	ngMin, ngMax := a.ngramRange()

	m := &Linear{
		features:     append([]string(nil), a.Features...),
		idf:          append([]float64(nil), a.IDF...),
		coefficients: append([]float64(nil), a.Coefficients...),
		intercept:    a.Intercept,
		ngramMin:     ngMin,
		ngramMax:     ngMax,
		vocab:        make(map[string]int, len(a.Features)),
	}
	for i, f := range m.features {
		m.vocab[f] = i
	}
	if a.StopWords == StopWordsEnglish {
		m.stop = englishStopWords
	}
	return m, nil
}

// PredictProba returns the probability that text is high quality.
func (m *Linear) PredictProba(text string) float64 {
	return m.Probability(m.Transform(text))
}

// Probability applies the logistic model to an already transformed vector.
func (m *Linear) Probability(vec models.SparseVector) float64 {
	z := m.intercept
	for _, f := range vec {
		z += f.Weight * m.coefficients[f.Index]
	}
	return sigmoid(z)
}

// Transform returns the L2-normalised TF-IDF vector of text, ordered by
// feature index. Terms outside the vocabulary are dropped.
func (m *Linear) Transform(text string) models.SparseVector {
	tokens := m.tokens(text)

	counts := map[int]float64{}
	for n := m.ngramMin; n <= m.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			if idx, ok := m.vocab[strings.Join(tokens[i:i+n], " ")]; ok {
				counts[idx]++
			}
		}
	}

	vec := make(models.SparseVector, 0, len(counts))
	var norm float64
	for idx, c := range counts {
		w := c * m.idf[idx]
		if w == 0 {
			continue
		}
		vec = append(vec, models.Feature{Index: idx, Weight: w})
		norm += w * w
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].Index < vec[j].Index })

	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i].Weight /= norm
		}
	}
	return vec
}

// Coefficients and FeatureNames expose the model's internal slices; callers
// must treat them as read-only.
func (m *Linear) Coefficients() []float64 { return m.coefficients }

func (m *Linear) FeatureNames() []string { return m.features }

func (m *Linear) Intercept() float64 { return m.intercept }

func (m *Linear) String() string {
	return fmt.Sprintf("linear(features=%d ngram=%d-%d stopwords=%t)",
		len(m.features), m.ngramMin, m.ngramMax, m.stop != nil)
}

// Artifact returns a copy of the parameters the model was built from.
func (m *Linear) Artifact() Artifact {
	a := Artifact{
		Version:      ArtifactVersion,
		Features:     append([]string(nil), m.features...),
		IDF:          append([]float64(nil), m.idf...),
		Coefficients: append([]float64(nil), m.coefficients...),
		Intercept:    m.intercept,
		NGramMin:     m.ngramMin,
		NGramMax:     m.ngramMax,
	}
	if m.stop != nil {
		a.StopWords = StopWordsEnglish
	}
	return a
}

// tokens lower-cases text, splits it into runs of word characters of length
// two or more and drops stop words.
func (m *Linear) tokens(text string) []string {
	notWord := func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '_' }
	words := strings.FieldsFunc(strings.ToLower(text), notWord)

	out := words[:0]
	for _, w := range words {
		if len([]rune(w)) < 2 {
			continue
		}
		if _, stop := m.stop[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
