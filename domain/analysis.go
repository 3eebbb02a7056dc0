package domain

import (
	"fmt"
	"time"
)

type AnalysisKind string

const (
	AnalysisSummary        AnalysisKind = "summary"
	AnalysisBias           AnalysisKind = "bias"
	AnalysisDevilsAdvocate AnalysisKind = "devils_advocate"
)

// AnalysisKinds returns the kinds in display order.
func AnalysisKinds() []AnalysisKind {
	return []AnalysisKind{AnalysisSummary, AnalysisBias, AnalysisDevilsAdvocate}
}

func ParseAnalysisKind(s string) (AnalysisKind, error) {
	for _, k := range AnalysisKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown analysis kind %q", s)
}

func (k AnalysisKind) Title() string {
	switch k {
	case AnalysisSummary:
		return "Summary"
	case AnalysisBias:
		return "Bias Analysis"
	case AnalysisDevilsAdvocate:
		return "Devil's Advocate"
	default:
		return string(k)
	}
}

// Fallback is the text shown when generation fails for this kind.
func (k AnalysisKind) Fallback() string {
	switch k {
	case AnalysisSummary:
		return "Could not generate summary due to an error."
	case AnalysisBias:
		return "Could not analyze bias due to an error."
	case AnalysisDevilsAdvocate:
		return "Could not generate devil's advocate analysis due to an error."
	default:
		return "Could not generate analysis due to an error."
	}
}

type Analysis struct {
	Kind     AnalysisKind `json:"kind"`
	Title    string       `json:"title"`
	Text     string       `json:"text"`
	Degraded bool         `json:"degraded"`
}

// ContentOrigin tells where the analysis input came from.
type ContentOrigin string

const (
	ContentFromPage    ContentOrigin = "page"
	ContentFromPreview ContentOrigin = "preview"
)

type DashboardItem struct {
	Article       Article       `json:"article"`
	ContentOrigin ContentOrigin `json:"content_origin"`
	Analyses      []Analysis    `json:"analyses"`
}

type Dashboard struct {
	Source      Source          `json:"source"`
	GeneratedAt time.Time       `json:"generated_at"`
	Items       []DashboardItem `json:"items"`
}
