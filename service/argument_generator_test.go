package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"argutree-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubModel implements TextModel for tests
type stubModel struct {
	text    string
	err     error
	prompts []string
}

func (m *stubModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.text, m.err
}

func testCases(n int) models.CaseRecords {
	cases := make(models.CaseRecords, 0, n)
	for i := 0; i < n; i++ {
		cases = append(cases, models.CaseRecord{
			ID:             fmt.Sprintf("case-%d", i+1),
			Name:           fmt.Sprintf("Case %d v. State", i+1),
			Court:          "Test Court",
			Date:           "2020-01-01",
			Snippet:        strings.Repeat("x", 250),
			URL:            fmt.Sprintf("https://example.com/%d", i+1),
			Citation:       fmt.Sprintf("%d U.S. 1", i+1),
			RelevanceScore: 0.9,
		})
	}
	return cases
}

func TestGenerateSuccess(t *testing.T) {
	model := &stubModel{text: "The argument, as generated."}
	g := NewArgumentGenerator(GeneratorWithModel(model))

	result := g.Generate(context.Background(), "tenant deposit dispute", testCases(2), models.RolePrimary)

	assert.Equal(t, models.ArgumentSuccess, result.Status)
	assert.Equal(t, models.RolePrimary, result.Role)
	assert.Equal(t, "The argument, as generated.", result.Text)
	assert.Equal(t, 2, result.CasesUsed)
}

func TestGenerateFallbackOnModelError(t *testing.T) {
	model := &stubModel{err: errors.New("quota exceeded")}
	g := NewArgumentGenerator(GeneratorWithModel(model))
	cases := testCases(4)

	result := g.Generate(context.Background(), "tenant deposit dispute", cases, models.RoleOpposition)

	assert.Equal(t, models.ArgumentError, result.Status)
	assert.NotEmpty(t, result.Text)
	assert.Contains(t, result.Text, "4 relevant cases")
	assert.Contains(t, result.Text, cases[0].Name)
	assert.Equal(t, 4, result.CasesUsed)
}

func TestGenerateFallbackWithoutModel(t *testing.T) {
	g := NewArgumentGenerator()

	result := g.Generate(context.Background(), "tenant deposit dispute", nil, models.RoleCounterRebuttal)

	assert.Equal(t, models.ArgumentError, result.Status)
	assert.Contains(t, result.Text, "0 relevant cases")
	assert.NotContains(t, result.Text, "Leading authority")
}

func TestGenerateFallbackIsDeterministic(t *testing.T) {
	g := NewArgumentGenerator()
	cases := testCases(2)

	first := g.Generate(context.Background(), "some query", cases, models.RolePrimary)
	second := g.Generate(context.Background(), "some query", cases, models.RolePrimary)

	assert.Equal(t, first.Text, second.Text)
}

func TestGeneratePromptUsesTopThreeCases(t *testing.T) {
	model := &stubModel{text: "ok"}
	g := NewArgumentGenerator(GeneratorWithModel(model))
	cases := testCases(5)

	g.Generate(context.Background(), "tenant deposit dispute", cases, models.RolePrimary)

	require.Len(t, model.prompts, 1)
	prompt := model.prompts[0]
	assert.Contains(t, prompt, "Case 1 v. State")
	assert.Contains(t, prompt, "Case 3 v. State")
	assert.NotContains(t, prompt, "Case 4 v. State")

	// Snippets are truncated to 200 characters in the context block
	assert.Contains(t, prompt, strings.Repeat("x", snippetLimit)+"...")
	assert.NotContains(t, prompt, strings.Repeat("x", snippetLimit+1))
}

func TestGeneratePromptTruncatesSnippetsOnRunes(t *testing.T) {
	model := &stubModel{text: "ok"}
	g := NewArgumentGenerator(GeneratorWithModel(model))

	cases := testCases(1)
	cases[0].Snippet = strings.Repeat("§", 300)

	g.Generate(context.Background(), "tenant deposit dispute", cases, models.RolePrimary)

	require.Len(t, model.prompts, 1)
	prompt := model.prompts[0]
	assert.True(t, utf8.ValidString(prompt))
	assert.Contains(t, prompt, strings.Repeat("§", snippetLimit)+"...")
	assert.NotContains(t, prompt, strings.Repeat("§", snippetLimit+1))
}

func TestPromptTemplateSelection(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		role     models.Role
		fragment string
	}{
		{"primary is IRAC regardless of domain", "murder appeal", models.RolePrimary, "IRAC analysis"},
		{"opposition criminal", "murder appeal", models.RoleOpposition, "prosecution"},
		{"opposition civil", "tenant deposit dispute", models.RoleOpposition, "claimant's argument"},
		{"counter-rebuttal criminal", "criminal jurisdiction", models.RoleCounterRebuttal, "defense's original argument"},
		{"counter-rebuttal civil", "tenant deposit dispute", models.RoleCounterRebuttal, "claimant's original argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &stubModel{text: "ok"}
			g := NewArgumentGenerator(GeneratorWithModel(model))
			g.Generate(context.Background(), tt.query, testCases(1), tt.role)
			require.Len(t, model.prompts, 1)
			assert.Contains(t, model.prompts[0], tt.fragment)
			assert.Contains(t, model.prompts[0], tt.query)
		})
	}
}
