package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BuildStatus represents the outcome of a research node build
type BuildStatus string

const (
	BuildSuccess         BuildStatus = "success"
	BuildMaxDepthReached BuildStatus = "max_depth_reached"
)

// PrimarySection holds the primary argument and its supporting authority
type PrimarySection struct {
	Text            string      `json:"text"`
	SupportingCases CaseRecords `json:"supporting_cases"`
	Confidence      float64     `json:"confidence"`
}

// OppositionSection holds the opposing argument and the contrary authority behind it
type OppositionSection struct {
	Text          string      `json:"text"`
	OpposingCases CaseRecords `json:"opposing_cases"`
	ThreatLevel   ThreatLevel `json:"threat_level"`
}

// CounterRebuttalSection holds the defensive reinforcement of the primary argument
type CounterRebuttalSection struct {
	Text                 string  `json:"text"`
	StrengthenedPosition bool    `json:"strengthened_position"`
	FinalConfidence      float64 `json:"final_confidence"`
}

// ResearchNode represents one complete primary/opposition/rebuttal bundle
// for a single query at a single depth. Immutable once returned.
type ResearchNode struct {
	Query             string                 `json:"query"`
	Depth             int                    `json:"depth"`
	Timestamp         time.Time              `json:"timestamp"`
	PrimaryArgument   PrimarySection         `json:"primary_argument"`
	Opposition        OppositionSection      `json:"opposition"`
	CounterRebuttal   CounterRebuttalSection `json:"counter_rebuttal"`
	Expandable        bool                   `json:"expandable"`
	CaseStrengthScore int                    `json:"case_strength_score"`
}

// Value implements driver.Valuer for JSONB
func (n ResearchNode) Value() (driver.Value, error) {
	return json.Marshal(n)
}

// Scan implements sql.Scanner for JSONB
func (n *ResearchNode) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, n)
}

// ResearchNodeResult represents the outcome of one pipeline invocation.
// On max_depth_reached only Status and Depth are set.
type ResearchNodeResult struct {
	Status             BuildStatus   `json:"status"`
	Depth              int           `json:"depth"`
	ResearchNode       *ResearchNode `json:"research_node,omitempty"`
	TotalCasesAnalyzed int           `json:"total_cases_analyzed,omitempty"`
	ProcessingTime     string        `json:"processing_time,omitempty"`
	NodeID             *uuid.UUID    `json:"node_id,omitempty"` // set when the node was persisted
}

// ResearchRecord represents a persisted research node row
type ResearchRecord struct {
	ID                 uuid.UUID     `json:"id"`
	Query              string        `json:"query"`
	Depth              int           `json:"depth"`
	MaxDepth           int           `json:"max_depth"`
	Node               *ResearchNode `json:"node"`
	TotalCasesAnalyzed int           `json:"total_cases_analyzed"`
	CreatedAt          time.Time     `json:"created_at"`
}
