
package classifier

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-quality-analyzer/internal/models"
)

func testArtifact() Artifact {
	return Artifact{
		Version:      ArtifactVersion,
		Features:     []string{"research", "evidence", "research evidence", "click"},
		IDF:          []float64{1, 2, 1.5, 3},
		Coefficients: []float64{1, 2, 0.5, -3},
		Intercept:    -0.25,
		NGramMin:     1,
		NGramMax:     2,
		StopWords:    StopWordsEnglish,
	}
}

func TestTransform(t *testing.T) {
	m, err := New(testArtifact())
	require.NoError(t, err)

	// stop words go before bigrams are built, so "research evidence" appears twice
	vec := m.Transform("The research and the evidence, research EVIDENCE!")
	norm := math.Sqrt(29)
	require.Len(t, vec, 3)
	want := []models.Feature{{Index: 0, Weight: 2 / norm}, {Index: 1, Weight: 4 / norm}, {Index: 2, Weight: 3 / norm}}
	for i := range want {
		assert.Equal(t, want[i].Index, vec[i].Index)
		assert.InDelta(t, want[i].Weight, vec[i].Weight, 1e-12)
	}
}

func TestTransformDropsShortTokensAndUnknownTerms(t *testing.T) {
	m, err := New(testArtifact())
	require.NoError(t, err)

	assert.Empty(t, m.Transform(""))
	assert.Empty(t, m.Transform("a b c x y z"))
	assert.Empty(t, m.Transform("completely unrelated words"))

	vec := m.Transform("click")
	require.Len(t, vec, 1)
	assert.InDelta(t, 1.0, vec[0].Weight, 1e-12)
}

func TestTransformWithoutStopWords(t *testing.T) {
	a := testArtifact()
	a.StopWords = ""
	a.Features = append(a.Features, "the")
	a.IDF = append(a.IDF, 1)
	a.Coefficients = append(a.Coefficients, 0)
	m, err := New(a)
	require.NoError(t, err)

	vec := m.Transform("the the")
	require.Len(t, vec, 1)
	assert.Equal(t, 4, vec[0].Index)
}

func TestPredictProba(t *testing.T) {
	m, err := New(testArtifact())
	require.NoError(t, err)

	z := -0.25 + 11.5/math.Sqrt(29)
	assert.InDelta(t, 1/(1+math.Exp(-z)), m.PredictProba("research evidence research evidence"), 1e-12)

	// no known terms leaves only the intercept
	assert.InDelta(t, 1/(1+math.Exp(0.25)), m.PredictProba("nothing here"), 1e-12)
	assert.Less(t, m.PredictProba("click click click"), 0.5)
}

func TestSigmoidExtremes(t *testing.T) {
	assert.Equal(t, 0.5, sigmoid(0))
	assert.InDelta(t, 1, sigmoid(800), 1e-12)
	assert.InDelta(t, 0, sigmoid(-800), 1e-12)
	assert.False(t, math.IsNaN(sigmoid(-800)))
}

func TestNewCopiesArtifact(t *testing.T) {
	a := testArtifact()
	m, err := New(a)
	require.NoError(t, err)

	a.Coefficients[0] = 99
	assert.Equal(t, 1.0, m.Coefficients()[0])
	assert.Equal(t, testArtifact(), m.Artifact())
	assert.Equal(t, "research", m.FeatureNames()[0])
	assert.Equal(t, -0.25, m.Intercept())
	assert.Contains(t, m.String(), "features=4")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Artifact)
	}{
		{"future version", func(a *Artifact) { a.Version = 7 }},
		{"no features", func(a *Artifact) { a.Features, a.IDF, a.Coefficients = nil, nil, nil }},
		{"idf length", func(a *Artifact) { a.IDF = a.IDF[:2] }},
		{"coefficient length", func(a *Artifact) { a.Coefficients = a.Coefficients[:3] }},
		{"ngram range", func(a *Artifact) { a.NGramMin, a.NGramMax = 3, 2 }},
		{"stop words", func(a *Artifact) { a.StopWords = "french" }},
		{"duplicate feature", func(a *Artifact) { a.Features[3] = "research" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testArtifact()
			tt.mutate(&a)
			_, err := New(a)
			assert.ErrorIs(t, err, ErrArtifactUnavailable)
		})
	}

	a := testArtifact()
	a.Version, a.NGramMin, a.NGramMax = 0, 0, 0
	assert.NoError(t, a.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"model.json", "model.db", "model.sqlite"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, testArtifact()))

			m, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, testArtifact(), m.Artifact())
		})
	}
}

func TestSaveSQLiteReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.db")
	require.NoError(t, SaveSQLite(path, testArtifact()))

	a := testArtifact()
	a.Intercept = 3
	require.NoError(t, SaveSQLite(path, a))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.Intercept())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, ErrArtifactUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(filepath.Join(dir, "missing.db"))
	assert.ErrorIs(t, err, ErrArtifactUnavailable)
	_, statErr := os.Stat(filepath.Join(dir, "missing.db"))
	assert.ErrorIs(t, statErr, os.ErrNotExist, "loading must not create the database")

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0644))
	_, err = Load(corrupt)
	assert.ErrorIs(t, err, ErrArtifactUnavailable)

	notDB := filepath.Join(dir, "text.db")
	require.NoError(t, os.WriteFile(notDB, []byte("plain text, not sqlite"), 0644))
	_, err = Load(notDB)
	assert.ErrorIs(t, err, ErrArtifactUnavailable)
}

func TestLoaderCachesSuccessOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	l := NewLoader(path)
	assert.Equal(t, path, l.Path())

	_, err := l.Load()
	require.ErrorIs(t, err, ErrArtifactUnavailable)

	require.NoError(t, SaveJSON(path, testArtifact()))
	first, err := l.Load()
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	second, err := l.Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
}
