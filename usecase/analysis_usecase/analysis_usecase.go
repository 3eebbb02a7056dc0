package analysis_usecase

import (
	"context"
	"fmt"
	"log/slog"

	"newsbias/domain"
	"newsbias/port/text_generation_port"
	"newsbias/utils/logger"
	"newsbias/utils/memo"
	"newsbias/utils/metrics"
)

const operation = "generate"

type AnalysisUsecase interface {
	// Generate returns the model's answer for kind, or kind.Fallback() when generation fails.
	Generate(ctx context.Context, kind domain.AnalysisKind, text, sourceName string) string
	// AnalyzeKind is Generate with the result wrapped as an Analysis.
	AnalyzeKind(ctx context.Context, kind domain.AnalysisKind, text, sourceName string) domain.Analysis
	// Analyze runs every kind in display order.
	Analyze(ctx context.Context, text, sourceName string) []domain.Analysis
}

type analysisUsecase struct {
	generator     text_generation_port.TextGenerationPort
	memo          *memo.Memoizer
	maxInputChars int
	logger        *slog.Logger
}

func NewAnalysisUsecase(generator text_generation_port.TextGenerationPort, memoizer *memo.Memoizer, maxInputChars int, logger *slog.Logger) AnalysisUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &analysisUsecase{
		generator:     generator,
		memo:          memoizer,
		maxInputChars: maxInputChars,
		logger:        logger,
	}
}

func (u *analysisUsecase) Generate(ctx context.Context, kind domain.AnalysisKind, text, sourceName string) string {
	out, _ := u.generate(ctx, kind, text, sourceName)
	return out
}

func (u *analysisUsecase) AnalyzeKind(ctx context.Context, kind domain.AnalysisKind, text, sourceName string) domain.Analysis {
	out, ok := u.generate(ctx, kind, text, sourceName)
	return domain.Analysis{
		Kind:     kind,
		Title:    kind.Title(),
		Text:     out,
		Degraded: !ok,
	}
}

func (u *analysisUsecase) Analyze(ctx context.Context, text, sourceName string) []domain.Analysis {
	kinds := domain.AnalysisKinds()
	analyses := make([]domain.Analysis, 0, len(kinds))
	for _, kind := range kinds {
		analyses = append(analyses, u.AnalyzeKind(ctx, kind, text, sourceName))
	}
	return analyses
}

// generate truncates the input, then memoizes successful answers per (kind, source, input).
// The second result is false when the fallback text was returned.
func (u *analysisUsecase) generate(ctx context.Context, kind domain.AnalysisKind, text, sourceName string) (string, bool) {
	input := truncateRunes(text, u.maxInputChars)
	ctx = logger.WithOperation(ctx, operation)

	out, err := memo.Do(ctx, u.memo, operation, []string{string(kind), sourceName, input}, func(ctx context.Context) (string, error) {
		prompt, err := buildPrompt(kind, input, sourceName)
		if err != nil {
			return "", err
		}
		answer, err := u.generator.GenerateText(ctx, prompt)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return "", fmt.Errorf("%w: empty answer", domain.ErrGenerationFailed)
		}
		return answer, nil
	})
	if err != nil {
		logger.WithContext(ctx, u.logger).WarnContext(ctx, "analysis generation failed",
			"kind", kind,
			"source", sourceName,
			"error", err)
		metrics.RecordFallback(string(kind))
		return kind.Fallback(), false
	}
	return out, true
}
