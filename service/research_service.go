package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"argutree-backend/models"
)

// Placeholder metrics. The pipeline does not yet compute real
// confidence or strength scores; these constants are surfaced as-is
// and flagged for stakeholders before any hardening.
const (
	primaryConfidence = 0.85
	finalConfidence   = 0.92
	caseStrengthScore = 87
)

// Pipeline stage names, in execution order. Shared with the async job
// runner so polled step lists match what the builder actually does.
const (
	StageSupportingRetrieval = "Retrieving supporting cases"
	StagePrimaryArgument     = "Drafting primary argument"
	StageOpposingRetrieval   = "Retrieving opposing cases"
	StageOppositionArgument  = "Drafting opposition argument"
	StageCounterRebuttal     = "Drafting counter-rebuttal"
)

// PipelineStages returns the stage names in execution order
func PipelineStages() []string {
	return []string{
		StageSupportingRetrieval,
		StagePrimaryArgument,
		StageOpposingRetrieval,
		StageOppositionArgument,
		StageCounterRebuttal,
	}
}

// Retriever retrieves cases for a stance; failures are absorbed into
// fallback results, never returned
type Retriever interface {
	Retrieve(ctx context.Context, query string, stance models.Stance, contextText string) *RetrievalResult
}

// Generator produces an argument for a role; failures are absorbed into
// fallback text, never returned
type Generator interface {
	Generate(ctx context.Context, query string, cases models.CaseRecords, role models.Role) models.ArgumentResult
}

// ResearchService orchestrates retrieval and generation into research nodes
type ResearchService struct {
	retriever Retriever
	generator Generator
}

// ResearchServiceOption is a functional option for ResearchService
type ResearchServiceOption func(*ResearchService)

// WithRetriever sets the case retriever
func WithRetriever(r Retriever) ResearchServiceOption {
	return func(s *ResearchService) {
		s.retriever = r
	}
}

// WithGenerator sets the argument generator
func WithGenerator(g Generator) ResearchServiceOption {
	return func(s *ResearchService) {
		s.generator = g
	}
}

// NewResearchService creates a new research service
func NewResearchService(opts ...ResearchServiceOption) *ResearchService {
	s := &ResearchService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildRequest represents a request to build one research node
type BuildRequest struct {
	Query    string
	Depth    int
	MaxDepth int
	// Progress, when set, is called with the stage name before each
	// pipeline stage runs. Used by the async job runner.
	Progress func(stage string)
}

// BuildNode builds a research node for the query at the given depth.
// The five pipeline stages run strictly in order because each stage
// consumes the previous stage's output. Individual stage failures
// degrade locally inside the retriever/generator; once the depth gate
// passes, the result status is always success.
func (s *ResearchService) BuildNode(ctx context.Context, req BuildRequest) (*models.ResearchNodeResult, error) {
	if s.retriever == nil {
		return nil, errors.New("case retriever not set")
	}
	if s.generator == nil {
		return nil, errors.New("argument generator not set")
	}

	if req.Depth >= req.MaxDepth {
		return &models.ResearchNodeResult{
			Status: models.BuildMaxDepthReached,
			Depth:  req.Depth,
		}, nil
	}

	log.Printf("Building research node at depth %d for: %s", req.Depth, req.Query)
	start := time.Now()
	progress := req.Progress
	if progress == nil {
		progress = func(string) {}
	}

	// 1. Supporting retrieval
	progress(StageSupportingRetrieval)
	supporting := s.retriever.Retrieve(ctx, req.Query, models.StanceSupporting, "")

	// 2. Primary argument over the supporting cases
	progress(StagePrimaryArgument)
	primary := s.generator.Generate(ctx, req.Query, supporting.Cases, models.RolePrimary)

	// 3. Opposing retrieval, seeded with the primary argument
	progress(StageOpposingRetrieval)
	opposing := s.retriever.Retrieve(ctx, req.Query, models.StanceOpposing, primary.Text)

	// 4. Opposition argument over the opposing cases
	progress(StageOppositionArgument)
	opposition := s.generator.Generate(ctx, req.Query, opposing.Cases, models.RoleOpposition)

	// 5. Counter-rebuttal reuses the supporting cases: it reinforces the
	// original position rather than rebutting with new material
	progress(StageCounterRebuttal)
	rebuttal := s.generator.Generate(ctx, req.Query, supporting.Cases, models.RoleCounterRebuttal)

	threat := models.ThreatMedium
	if len(opposing.Cases) > 2 {
		threat = models.ThreatHigh
	}

	node := &models.ResearchNode{
		Query:     req.Query,
		Depth:     req.Depth,
		Timestamp: time.Now().UTC(),
		PrimaryArgument: models.PrimarySection{
			Text:            primary.Text,
			SupportingCases: supporting.Cases,
			Confidence:      primaryConfidence,
		},
		Opposition: models.OppositionSection{
			Text:          opposition.Text,
			OpposingCases: opposing.Cases,
			ThreatLevel:   threat,
		},
		CounterRebuttal: models.CounterRebuttalSection{
			Text:                 rebuttal.Text,
			StrengthenedPosition: true,
			FinalConfidence:      finalConfidence,
		},
		Expandable:        req.Depth < req.MaxDepth-1,
		CaseStrengthScore: caseStrengthScore,
	}

	return &models.ResearchNodeResult{
		Status:             models.BuildSuccess,
		Depth:              req.Depth,
		ResearchNode:       node,
		TotalCasesAnalyzed: len(supporting.Cases) + len(opposing.Cases),
		ProcessingTime:     fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
	}, nil
}
