package models

// Board is the decoded body of the board endpoint
type Board struct {
	Pipelines []Pipeline `json:"pipelines"`
}

// Pipeline is a single column on a board
type Pipeline struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Issues []BoardIssue `json:"issues"`
}

// BoardIssue is the abbreviated issue entry embedded in a pipeline
type BoardIssue struct {
	IssueNumber int       `json:"issue_number"`
	Estimate    *Estimate `json:"estimate,omitempty"`
	Position    *int      `json:"position,omitempty"`
	IsEpic      bool      `json:"is_epic"`
}

// Estimate is the point value attached to an issue
type Estimate struct {
	Value float64 `json:"value"`
}
