package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ResearchJobStatus represents the status of an asynchronous research job
type ResearchJobStatus string

const (
	JobStatusPending    ResearchJobStatus = "pending"
	JobStatusInProgress ResearchJobStatus = "in_progress"
	JobStatusCompleted  ResearchJobStatus = "completed"
	JobStatusFailed     ResearchJobStatus = "failed"
)

// ResearchStep represents one pipeline stage within a research job
type ResearchStep struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "pending", "in_progress", "completed", "failed"
}

// ResearchSteps represents the ordered pipeline stages of a job
type ResearchSteps []ResearchStep

// Value implements driver.Valuer for JSONB
func (s ResearchSteps) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB
func (s *ResearchSteps) Scan(value interface{}) error {
	if value == nil {
		*s = make(ResearchSteps, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*s = make(ResearchSteps, 0)
		return nil
	}

	if len(bytes) == 0 {
		*s = make(ResearchSteps, 0)
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// ResearchJob represents an asynchronous research build tracked for polling
type ResearchJob struct {
	ID           uuid.UUID         `json:"id"`
	Query        string            `json:"query"`
	Depth        int               `json:"depth"`
	MaxDepth     int               `json:"max_depth"`
	Status       ResearchJobStatus `json:"status"`
	CurrentStep  *string           `json:"current_step,omitempty"`
	Steps        ResearchSteps     `json:"steps"`
	NodeID       *uuid.UUID        `json:"node_id,omitempty"`
	ErrorMessage *string           `json:"error_message,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}
