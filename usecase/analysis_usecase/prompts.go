package analysis_usecase

import (
	"fmt"

	"newsbias/domain"
)

const (
	summaryPromptTemplate = `Summarize this article in 4-5 bullet points:
1. Main topic
2. Key facts
3. Main arguments
4. Key quotes
5. Impact

Article content:
%s

Keep each point under 10 words. Be direct and clear.`

	biasPromptTemplate = `Analyze bias in this %s article. For each aspect, provide specific examples:
1. Word choice (loaded terms)
2. Fact selection (inclusions/exclusions)
3. Tone (how presented)
4. Sources (who's quoted)
5. Conclusions (what's implied)

Article content:
%s

Keep each point under 8 words. Include specific examples.`

	devilsAdvocatePromptTemplate = `Critically analyze this %s article:
1. Missing context
2. Opposing views
3. Questionable assumptions
4. Alternative interpretations
5. Unanswered questions

Article content:
%s

Keep each point under 8 words. Focus on gaps and alternatives.`
)

func buildPrompt(kind domain.AnalysisKind, text, sourceName string) (string, error) {
	switch kind {
	case domain.AnalysisSummary:
		return fmt.Sprintf(summaryPromptTemplate, text), nil
	case domain.AnalysisBias:
		return fmt.Sprintf(biasPromptTemplate, sourceName, text), nil
	case domain.AnalysisDevilsAdvocate:
		return fmt.Sprintf(devilsAdvocatePromptTemplate, sourceName, text), nil
	default:
		return "", fmt.Errorf("unknown analysis kind %q", kind)
	}
}

// truncateRunes keeps the first limit characters of s.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
