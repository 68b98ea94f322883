package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"argutree-backend/models"

	"github.com/google/generative-ai-go/genai"
)

const generationTimeout = 45 * time.Second

// TextModel generates prose for a single rendered prompt
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiModel adapts a genai client to TextModel
type GeminiModel struct {
	model *genai.GenerativeModel
}

// NewGeminiModel creates a Gemini-backed text model
func NewGeminiModel(client *genai.Client, modelName string) *GeminiModel {
	m := client.GenerativeModel(modelName)
	m.SetTemperature(0.4)
	return &GeminiModel{model: m}
}

// GenerateText invokes the Gemini model with a single prompt
func (m *GeminiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := m.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				builder.WriteString(string(text))
			}
		}
	}

	result := builder.String()
	if result == "" {
		return "", errors.New("model returned empty content")
	}
	return result, nil
}

// ArgumentGenerator renders role-specific prompts over retrieved cases
// and invokes the text model. Failures are absorbed: the result always
// carries usable text, falling back to a deterministic template.
type ArgumentGenerator struct {
	model TextModel
}

// ArgumentGeneratorOption is a functional option for ArgumentGenerator
type ArgumentGeneratorOption func(*ArgumentGenerator)

// GeneratorWithModel sets the text model
func GeneratorWithModel(model TextModel) ArgumentGeneratorOption {
	return func(g *ArgumentGenerator) {
		g.model = model
	}
}

// NewArgumentGenerator creates a new argument generator
func NewArgumentGenerator(opts ...ArgumentGeneratorOption) *ArgumentGenerator {
	g := &ArgumentGenerator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces a legal argument for the given role from the top
// cases. Single attempt, no retries; any failure yields the fallback
// text so callers never see an empty argument.
func (g *ArgumentGenerator) Generate(ctx context.Context, query string, cases models.CaseRecords, role models.Role) models.ArgumentResult {
	if g.model == nil {
		log.Printf("Warning: No text model configured for %s argument. Using fallback.", role)
		return fallbackResult(query, cases, role)
	}

	domain := DomainForTopic(ClassifyTopic(query))
	prompt := renderPrompt(role, domain, query, cases)

	genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	text, err := g.model.GenerateText(genCtx, prompt)
	if err != nil {
		log.Printf("Warning: Argument generation failed for %s role: %v. Using fallback.", role, err)
		return fallbackResult(query, cases, role)
	}

	return models.ArgumentResult{
		Status:    models.ArgumentSuccess,
		Role:      role,
		Text:      text,
		CasesUsed: len(cases),
	}
}

// fallbackResult builds the deterministic substitute argument
func fallbackResult(query string, cases models.CaseRecords, role models.Role) models.ArgumentResult {
	return models.ArgumentResult{
		Status:    models.ArgumentError,
		Role:      role,
		Text:      fallbackArgument(query, cases, role),
		CasesUsed: len(cases),
	}
}

// fallbackArgument embeds the query, the case count and, when present,
// the leading case name
func fallbackArgument(query string, cases models.CaseRecords, role models.Role) string {
	label := "Legal analysis"
	switch role {
	case models.RoleOpposition:
		label = "Opposition analysis"
	case models.RoleCounterRebuttal:
		label = "Counter-rebuttal analysis"
	}

	text := fmt.Sprintf("[Fallback] %s for %s based on %d relevant cases.", label, query, len(cases))
	if len(cases) > 0 {
		text += fmt.Sprintf(" Leading authority: %s (%s).", cases[0].Name, cases[0].Citation)
	}
	return text
}
