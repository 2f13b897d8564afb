package models

// Issue is the decoded body of the single-issue endpoint
type Issue struct {
	Estimate  *Estimate       `json:"estimate,omitempty"`
	PlusOnes  []PlusOne       `json:"plus_ones,omitempty"`
	Pipeline  *IssuePipeline  `json:"pipeline,omitempty"`
	Pipelines []IssuePipeline `json:"pipelines,omitempty"`
	IsEpic    bool            `json:"is_epic"`
}

// IssuePipeline identifies the pipeline an issue currently sits in
type IssuePipeline struct {
	Name        string `json:"name"`
	PipelineID  string `json:"pipeline_id,omitempty"`
	WorkspaceID string `json:"workspace_id,omitempty"`
}

// PlusOne is a single upvote on an issue
type PlusOne struct {
	CreatedAt string `json:"created_at"`
}

// IssueEvent is one entry of an issue's event history. EventType
// discriminates which of the optional from/to pairs is populated.
type IssueEvent struct {
	UserID       int64          `json:"user_id"`
	EventType    string         `json:"type"`
	CreatedAt    string         `json:"created_at"`
	FromEstimate *Estimate      `json:"from_estimate,omitempty"`
	ToEstimate   *Estimate      `json:"to_estimate,omitempty"`
	FromPipeline *IssuePipeline `json:"from_pipeline,omitempty"`
	ToPipeline   *IssuePipeline `json:"to_pipeline,omitempty"`
}
