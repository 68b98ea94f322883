package service

import (
	"strings"
	"testing"
	"time"

	"argutree-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestAssembleBrief(t *testing.T) {
	node := &models.ResearchNode{
		Query:     "tenant deposit dispute",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		PrimaryArgument: models.PrimarySection{
			Text:            "The primary analysis.",
			SupportingCases: testCases(2),
			Confidence:      0.85,
		},
		Opposition: models.OppositionSection{
			Text:          "The opposing analysis.",
			OpposingCases: testCases(3),
			ThreatLevel:   models.ThreatHigh,
		},
		CounterRebuttal: models.CounterRebuttalSection{
			Text:            "The rebuttal analysis.",
			FinalConfidence: 0.92,
		},
	}

	brief := AssembleBrief(node)

	assert.Contains(t, brief, "LEGAL RESEARCH BRIEF")
	assert.Contains(t, brief, "Research Question: tenant deposit dispute")
	assert.Contains(t, brief, "June 1, 2025")
	assert.Contains(t, brief, "The primary analysis.")
	assert.Contains(t, brief, "The opposing analysis.")
	assert.Contains(t, brief, "The rebuttal analysis.")
	assert.Contains(t, brief, "Assessed threat level: HIGH")
	assert.Contains(t, brief, "Case 1 v. State, 1 U.S. 1 (Test Court, 2020-01-01)")
	assert.Contains(t, brief, "2 supporting and 3 contrary authorities")

	// Sections appear in order
	primary := strings.Index(brief, "I. PRIMARY ARGUMENT")
	opposition := strings.Index(brief, "II. ANTICIPATED OPPOSITION")
	rebuttal := strings.Index(brief, "III. COUNTER-REBUTTAL")
	conclusion := strings.Index(brief, "IV. CONCLUSION")
	assert.True(t, primary >= 0 && primary < opposition)
	assert.True(t, opposition < rebuttal)
	assert.True(t, rebuttal < conclusion)
}

func TestAssembleBriefOmitsEmptyAuthorityBlocks(t *testing.T) {
	node := &models.ResearchNode{
		Query:     "anything",
		Timestamp: time.Now().UTC(),
	}

	brief := AssembleBrief(node)

	assert.NotContains(t, brief, "Supporting Authorities")
	assert.NotContains(t, brief, "Contrary Authorities")
}
