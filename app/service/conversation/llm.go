package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"guidedawg/app/config"

	"github.com/samber/do"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const maxGenerateDuration = 30 * time.Second

// Generator is the external text-generation call. Everything upstream of it
// is deterministic; everything behind it is an opaque collaborator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type openAIGenerator struct {
	llm         *openai.LLM
	temperature float64
	maxTokens   int
}

func NewGenerator(di *do.Injector) (Generator, error) {
	cfg := do.MustInvoke[*config.Config](di)

	llm, err := openai.New(
		openai.WithToken(cfg.OpenAI.Token),
		openai.WithBaseURL(cfg.OpenAI.BaseURL),
		openai.WithModel(cfg.OpenAI.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}

	return &openAIGenerator{
		llm:         llm,
		temperature: cfg.OpenAI.Temperature,
		maxTokens:   cfg.OpenAI.MaxTokens,
	}, nil
}

func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, maxGenerateDuration)
	defer cancel()

	result, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithTemperature(g.temperature),
		llms.WithMaxTokens(g.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}

	return strings.TrimSpace(result), nil
}
