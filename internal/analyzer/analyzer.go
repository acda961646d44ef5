
// Package analyzer runs the quality pipeline: acquire text, clean it, score it
// with the classifier and readability metrics, and explain the decision.
package analyzer

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"content-quality-analyzer/internal/classifier"
	"content-quality-analyzer/internal/explain"
	"content-quality-analyzer/internal/models"
	"content-quality-analyzer/internal/readability"
	"content-quality-analyzer/internal/scoring"
	"content-quality-analyzer/internal/textclean"
	"content-quality-analyzer/pkg/logger"
)

const DefaultConcurrency = 10

var (
	ErrInvalidRequest = errors.New("provide either 'url' or 'text'")
	ErrAcquisition    = errors.New("text acquisition failed")
)

// Classifier is a linear text model: a vectorizer plus per-feature weights.
type Classifier interface {
	PredictProba(text string) float64
	Transform(text string) models.SparseVector
	Coefficients() []float64
	FeatureNames() []string
}

// ClassifierSource yields the shared classifier, loading it on first use.
type ClassifierSource func() (Classifier, error)

// Static wraps an already loaded classifier.
func Static(c Classifier) ClassifierSource {
	return func() (Classifier, error) { return c, nil }
}

// FromLoader adapts a classifier.Loader.
func FromLoader(l *classifier.Loader) ClassifierSource {
	return func() (Classifier, error) {
		m, err := l.Load()
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

type Analyzer struct {
	fetcher Fetcher
	models  ClassifierSource
	topK    int
	log     *logger.Logger
}

type Option func(*Analyzer)

func WithTopK(k int) Option { return func(a *Analyzer) { a.topK = k } }

func WithLogger(l *logger.Logger) Option { return func(a *Analyzer) { a.log = l } }

func New(fetcher Fetcher, src ClassifierSource, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher: fetcher,
		models:  src,
		topK:    explain.DefaultTopK,
		log:     logger.New(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyze scores one request. A URL takes precedence over inline text.
func (a *Analyzer) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResult, error) {
	if req.URL == "" && req.Text == "" {
		return nil, ErrInvalidRequest
	}

	text := req.Text
	if req.URL != "" {
		if a.fetcher == nil {
			return nil, fmt.Errorf("%w: no fetcher configured", ErrAcquisition)
		}
		fetched, err := a.fetcher.FetchText(ctx, req.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAcquisition, err)
		}
		text = fetched
	}
	cleaned := textclean.Clean(text)

	model, err := a.models()
	if err != nil {
		if !errors.Is(err, classifier.ErrArtifactUnavailable) {
			err = fmt.Errorf("%w: %w", classifier.ErrArtifactUnavailable, err)
		}
		return nil, err
	}

	p := model.PredictProba(cleaned)
	label := models.LabelLowQuality
	if p >= scoring.Threshold {
		label = models.LabelHighQuality
	}

	m := readability.Compute(cleaned)

	ex := explain.Explain(model.Transform(cleaned), model.Coefficients(), model.FeatureNames(), a.topK)
	if ex.Degraded() {
		a.log.Warnf("explanation unavailable: %v", ex.Err)
	}

	return &models.AnalysisResult{
		Label:        label,
		ProbQuality:  p,
		QualityScore: scoring.Blend(p, m.ReadingEase),
		Readability: models.Readability{
			FleschReadingEase:  m.ReadingEase,
			FleschKincaidGrade: m.GradeLevel,
		},
		Explanation: models.Explanation{
			TopPositiveTerms: ex.Explanation.Positive,
			TopNegativeTerms: ex.Explanation.Negative,
		},
	}, nil
}

// AnalyzeBatch analyzes reqs with at most concurrency requests in flight.
// Results keep the input order; a failed item never stops the others.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, reqs []models.AnalyzeRequest, concurrency int) []models.BatchItem {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	items := make([]models.BatchItem, len(reqs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			item := models.BatchItem{Index: i, URL: req.URL}
			if err := ctx.Err(); err != nil {
				item.Error = err.Error()
				items[i] = item
				return nil
			}
			res, err := a.Analyze(ctx, req)
			if err != nil {
				item.Error = err.Error()
			} else {
				item.Result = res
			}
			items[i] = item
			return nil
		})
	}
	_ = g.Wait()

	a.log.Debugf("batch of %d analyzed with concurrency %d", len(reqs), concurrency)
	return items
}
