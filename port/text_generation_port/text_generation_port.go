package text_generation_port

//go:generate mockgen -source=text_generation_port.go -destination=../../mocks/mock_text_generation_port.go -package=mocks

import "context"

type TextGenerationPort interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
