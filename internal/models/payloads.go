package models

// IssueRef identifies an issue across repositories in write payloads
type IssueRef struct {
	RepoID      int64 `json:"repo_id"`
	IssueNumber int   `json:"issue_number"`
}

// UpdateEpicIssuesPayload adds and removes child issues of an epic
type UpdateEpicIssuesPayload struct {
	AddIssues    []IssueRef `json:"add_issues,omitempty"`
	RemoveIssues []IssueRef `json:"remove_issues,omitempty"`
}

// ConvertToEpicPayload optionally seeds a freshly-converted epic with issues
type ConvertToEpicPayload struct {
	Issues []IssueRef `json:"issues,omitempty"`
}

// EstimatePayload sets the point value of an issue
type EstimatePayload struct {
	Estimate float64 `json:"estimate"`
}

// EstimateResult is the body returned after setting an estimate
type EstimateResult struct {
	Estimate float64 `json:"estimate"`
}
