package text_generation_gateway

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"

	"newsbias/domain"
	"newsbias/driver/gemini"
	"newsbias/utils/otel"
)

type TextGenerationGateway struct {
	client *gemini.Client
}

func NewTextGenerationGateway(client *gemini.Client) *TextGenerationGateway {
	return &TextGenerationGateway{client: client}
}

// GenerateText wraps every model failure in domain.ErrGenerationFailed.
func (g *TextGenerationGateway) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer().Start(ctx, "gemini.GenerateContent")
	defer span.End()

	text, err := g.client.GenerateContent(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	return text, nil
}
