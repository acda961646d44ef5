
// Package explain ranks the terms that pushed a linear classifier towards or
// away from its decision.
package explain

import (
	"errors"
	"fmt"
	"sort"

	"content-quality-analyzer/internal/models"
)

// DefaultTopK is the number of terms reported on each side.
const DefaultTopK = 6

var (
	ErrMissingModel    = errors.New("model coefficients or feature names missing")
	ErrShapeMismatch   = errors.New("coefficients and feature names differ in length")
	ErrIndexOutOfRange = errors.New("feature index out of range")
)

type Explanation struct {
	Positive []string
	Negative []string
}

// Result is the outcome of Explain. Err is set when the explanation fell back
// to empty lists; the Explanation is usable either way.
type Result struct {
	Explanation Explanation
	Err         error
}

func (r Result) Degraded() bool { return r.Err != nil }

// Empty returns an explanation with empty, non-nil term lists.
func Empty() Explanation {
	return Explanation{Positive: []string{}, Negative: []string{}}
}

type contribution struct {
	term  string
	value float64
}

// Explain computes weight*coefficient for every non-zero feature in vec and
// returns the topK strongest positive and negative terms. Structural problems
// with the inputs never escape: they produce empty lists and a non-nil Err.
func Explain(vec models.SparseVector, coefficients []float64, featureNames []string, topK int) Result {
	contribs, err := contributions(vec, coefficients, featureNames)
	if err != nil {
		return Result{Explanation: Empty(), Err: err}
	}

	sort.SliceStable(contribs, func(i, j int) bool {
		return contribs[i].value > contribs[j].value
	})

	out := Empty()
	if topK <= 0 {
		return Result{Explanation: out}
	}
	n := min(topK, len(contribs))
	for _, c := range contribs[:n] {
		out.Positive = append(out.Positive, c.term)
	}
	for i := len(contribs) - 1; i >= len(contribs)-n; i-- {
		out.Negative = append(out.Negative, contribs[i].term)
	}
	return Result{Explanation: out}
}

func contributions(vec models.SparseVector, coefficients []float64, featureNames []string) ([]contribution, error) {
	if len(coefficients) == 0 || len(featureNames) == 0 {
		return nil, ErrMissingModel
	}
	if len(coefficients) != len(featureNames) {
		return nil, fmt.Errorf("%w: %d coefficients, %d names", ErrShapeMismatch, len(coefficients), len(featureNames))
	}

	out := make([]contribution, 0, len(vec))
	for _, f := range vec {
		if f.Weight == 0 {
			continue
		}
		if f.Index < 0 || f.Index >= len(featureNames) {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, f.Index, len(featureNames))
		}
		out = append(out, contribution{
			term:  featureNames[f.Index],
			value: f.Weight * coefficients[f.Index],
		})
	}
	return out, nil
}
