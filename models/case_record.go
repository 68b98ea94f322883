package models

import (
	"database/sql/driver"
	"encoding/json"
)

// Stance represents the rhetorical side a retrieved case set supports
type Stance string

const (
	StanceSupporting Stance = "supporting"
	StanceOpposing   Stance = "opposing"
)

// ThreatLevel represents how dangerous an opposing case is to the primary argument
type ThreatLevel string

const (
	ThreatLow    ThreatLevel = "LOW"
	ThreatMedium ThreatLevel = "MEDIUM"
	ThreatHigh   ThreatLevel = "HIGH"
)

// CaseRecord represents a single case law result in canonical form.
// Name, Court, Date and Citation are never empty: missing values are
// replaced with placeholder strings so consumers never branch on absence.
type CaseRecord struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Court          string      `json:"court"`
	Date           string      `json:"date"`
	Snippet        string      `json:"snippet"`
	URL            string      `json:"url"`
	Citation       string      `json:"citation"`
	RelevanceScore float64     `json:"relevance_score"`
	ThreatLevel    ThreatLevel `json:"threat_level,omitempty"` // opposing-stance records only
}

// CaseRecords represents an ordered list of case records
type CaseRecords []CaseRecord

// Value implements driver.Valuer for JSONB
func (c CaseRecords) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB
func (c *CaseRecords) Scan(value interface{}) error {
	if value == nil {
		*c = make(CaseRecords, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*c = make(CaseRecords, 0)
		return nil
	}

	if len(bytes) == 0 {
		*c = make(CaseRecords, 0)
		return nil
	}

	return json.Unmarshal(bytes, c)
}
