package models

// EpicList is the decoded body of the epics listing endpoint
type EpicList struct {
	EpicIssues []EpicRef `json:"epic_issues"`
}

// EpicRef points at the issue backing an epic
type EpicRef struct {
	IssueNumber int    `json:"issue_number"`
	RepoID      int64  `json:"repo_id"`
	IssueURL    string `json:"issue_url,omitempty"`
}

// Epic is the decoded body of the epic detail endpoint
type Epic struct {
	TotalEpicEstimates *Estimate      `json:"total_epic_estimates,omitempty"`
	Estimate           *Estimate      `json:"estimate,omitempty"`
	Pipeline           *IssuePipeline `json:"pipeline,omitempty"`
	Issues             []EpicIssue    `json:"issues"`
}

// EpicIssue is a child issue inside an epic
type EpicIssue struct {
	IssueNumber int       `json:"issue_number"`
	RepoID      int64     `json:"repo_id"`
	Estimate    *Estimate `json:"estimate,omitempty"`
	IsEpic      bool      `json:"is_epic"`
}
