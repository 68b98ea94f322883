package models

// Role represents the function of a generated argument within a research node
type Role string

const (
	RolePrimary         Role = "primary"
	RoleOpposition      Role = "opposition"
	RoleCounterRebuttal Role = "counter_rebuttal"
)

// ArgumentStatus represents the outcome of an argument generation attempt
type ArgumentStatus string

const (
	ArgumentSuccess ArgumentStatus = "success"
	ArgumentError   ArgumentStatus = "error"
)

// ArgumentResult represents a generated legal argument. Text is always
// populated: model output on success, a deterministic fallback on error.
type ArgumentResult struct {
	Status    ArgumentStatus `json:"status"`
	Role      Role           `json:"role"`
	Text      string         `json:"text"`
	CasesUsed int            `json:"cases_used"`
}
