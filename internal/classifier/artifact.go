
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	ArtifactVersion  = 1
	StopWordsEnglish = "english"
)

// ErrArtifactUnavailable is returned when the model artifact is missing,
// unreadable, or internally inconsistent.
var ErrArtifactUnavailable = errors.New("model artifact unavailable; train or provision the model artifact")

// Artifact holds the parameters of a pretrained vectorizer and classifier.
// Features, IDF and Coefficients are aligned by feature index.
type Artifact struct {
	Version      int       `json:"version"`
	Features     []string  `json:"features"`
	IDF          []float64 `json:"idf"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	NGramMin     int       `json:"ngram_min,omitempty"`
	NGramMax     int       `json:"ngram_max,omitempty"`
	StopWords    string    `json:"stop_words,omitempty"`
}

// ngramRange defaults to unigrams and bigrams.
func (a Artifact) ngramRange() (int, int) {
	lo, hi := a.NGramMin, a.NGramMax
	if lo == 0 {
		lo = 1
	}
	if hi == 0 {
		hi = 2
	}
	return lo, hi
}

func (a Artifact) Validate() error {
	if a.Version != 0 && a.Version != ArtifactVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrArtifactUnavailable, a.Version)
	}
	n := len(a.Features)
	if n == 0 {
		return fmt.Errorf("%w: no features", ErrArtifactUnavailable)
	}
	if len(a.IDF) != n || len(a.Coefficients) != n {
		return fmt.Errorf("%w: %d features, %d idf weights, %d coefficients",
			ErrArtifactUnavailable, n, len(a.IDF), len(a.Coefficients))
	}
	if lo, hi := a.ngramRange(); lo < 1 || hi < lo {
		return fmt.Errorf("%w: invalid ngram range %d-%d", ErrArtifactUnavailable, lo, hi)
	}
	if a.StopWords != "" && a.StopWords != StopWordsEnglish {
		return fmt.Errorf("%w: unknown stop word list %q", ErrArtifactUnavailable, a.StopWords)
	}
	seen := make(map[string]struct{}, n)
	for _, f := range a.Features {
		if _, dup := seen[f]; dup {
			return fmt.Errorf("%w: duplicate feature %q", ErrArtifactUnavailable, f)
		}
		seen[f] = struct{}{}
	}
	return nil
}

// Load reads an artifact from disk, picking the format from the extension:
// .db, .sqlite and .sqlite3 are SQLite, everything else JSON.
func Load(path string) (*Linear, error) {
	var (
		a   *Artifact
		err error
	)
	if isSQLite(path) {
		a, err = ReadSQLite(path)
	} else {
		a, err = ReadJSON(path)
	}
	if err != nil {
		return nil, err
	}
	return New(*a)
}

// Save writes the artifact in the format matching the path extension.
func Save(path string, a Artifact) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if isSQLite(path) {
		return SaveSQLite(path, a)
	}
	return SaveJSON(path, a)
}

func ReadJSON(path string) (*Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactUnavailable, err)
	}
	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrArtifactUnavailable, path, err)
	}
	return &a, nil
}

func SaveJSON(path string, a Artifact) error {
	a.Version = ArtifactVersion
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("error encoding artifact: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("error writing artifact %s: %w", path, err)
	}
	return nil
}

func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}
