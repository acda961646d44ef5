
package models

// Feature is one non-zero entry of a document's sparse feature vector.
type Feature struct {
	Index  int     `json:"index"`
	Weight float64 `json:"weight"`
}

// SparseVector holds the non-zero features of one document, ordered by index.
type SparseVector []Feature

type AnalyzeRequest struct {
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

type Readability struct {
	FleschReadingEase  float64 `json:"flesch_reading_ease" yaml:"flesch_reading_ease"`
	FleschKincaidGrade float64 `json:"flesch_kincaid_grade" yaml:"flesch_kincaid_grade"`
}

type Explanation struct {
	TopPositiveTerms []string `json:"top_positive_terms" yaml:"top_positive_terms"`
	TopNegativeTerms []string `json:"top_negative_terms" yaml:"top_negative_terms"`
}

type AnalysisResult struct {
	Label        string      `json:"label" yaml:"label"`
	ProbQuality  float64     `json:"prob_quality" yaml:"prob_quality"`
	QualityScore int         `json:"quality_score" yaml:"quality_score"`
	Readability  Readability `json:"readability" yaml:"readability"`
	Explanation  Explanation `json:"explanation" yaml:"explanation"`
}

// BatchItem is the outcome of one entry of a batch analysis.
type BatchItem struct {
	Index  int             `json:"index"`
	URL    string          `json:"url,omitempty"`
	Result *AnalysisResult `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

const (
	LabelHighQuality = "high_quality"
	LabelLowQuality  = "low_quality"
)
