package services

import (
	"encoding/json"
	"fmt"

	"github.com/boardhub/boardhub-go/internal/client"
	"github.com/boardhub/boardhub-go/internal/logger"
	"github.com/boardhub/boardhub-go/internal/models"
)

// BoardService exposes the board, issue and epic endpoints. Every method
// issues exactly one request; there is no retrying, batching or caching.
type BoardService struct {
	client *client.APIClient
}

// NewBoardService creates a new board service
func NewBoardService(client *client.APIClient) *BoardService {
	return &BoardService{
		client: client,
	}
}

// GetBoard retrieves the board for a repository. Only the pipelines are
// returned; the rest of the board envelope carries nothing useful.
func (s *BoardService) GetBoard(repoID int64) ([]models.Pipeline, error) {
	endpoint := fmt.Sprintf("/repositories/%d/board", repoID)

	var board models.Board
	if err := s.client.Get(endpoint, nil, &board); err != nil {
		return board.Pipelines, fmt.Errorf("failed to get board for repository %d: %w", repoID, err)
	}

	logger.Debug("Fetched board for repository %d with %d pipelines", repoID, len(board.Pipelines))
	return board.Pipelines, nil
}

// GetIssue retrieves the tracking data for a single issue
func (s *BoardService) GetIssue(repoID int64, issueNumber int) (*models.Issue, error) {
	endpoint := fmt.Sprintf("/repositories/%d/issues/%d", repoID, issueNumber)

	var issue models.Issue
	if err := s.client.Get(endpoint, nil, &issue); err != nil {
		return &issue, fmt.Errorf("failed to get issue %d/%d: %w", repoID, issueNumber, err)
	}

	return &issue, nil
}

// GetIssueEvents retrieves the event history of an issue, newest first
func (s *BoardService) GetIssueEvents(repoID int64, issueNumber int) ([]models.IssueEvent, error) {
	endpoint := fmt.Sprintf("/repositories/%d/issues/%d/events", repoID, issueNumber)

	var events []models.IssueEvent
	if err := s.client.Get(endpoint, nil, &events); err != nil {
		return events, fmt.Errorf("failed to get events for issue %d/%d: %w", repoID, issueNumber, err)
	}

	logger.Debug("Fetched %d events for issue %d/%d", len(events), repoID, issueNumber)
	return events, nil
}

// GetEpics retrieves the list of epics in a repository
func (s *BoardService) GetEpics(repoID int64) (*models.EpicList, error) {
	endpoint := fmt.Sprintf("/repositories/%d/epics", repoID)

	var epics models.EpicList
	if err := s.client.Get(endpoint, nil, &epics); err != nil {
		return &epics, fmt.Errorf("failed to get epics for repository %d: %w", repoID, err)
	}

	logger.Debug("Fetched %d epics for repository %d", len(epics.EpicIssues), repoID)
	return &epics, nil
}

// GetEpicData retrieves a single epic with its child issues
func (s *BoardService) GetEpicData(repoID int64, epicID int) (*models.Epic, error) {
	endpoint := fmt.Sprintf("/repositories/%d/epics/%d", repoID, epicID)

	var epic models.Epic
	if err := s.client.Get(endpoint, nil, &epic); err != nil {
		return &epic, fmt.Errorf("failed to get epic %d/%d: %w", repoID, epicID, err)
	}

	return &epic, nil
}

// AddRemoveIssuesToEpic adds and/or removes child issues of an epic.
// The raw response body is returned as-is: write responses have no fixed
// shape and, unless StrictStatus is configured, their status field is not
// inspected.
func (s *BoardService) AddRemoveIssuesToEpic(repoID int64, epicID int, payload models.UpdateEpicIssuesPayload) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("/repositories/%d/epics/%d/update_issues", repoID, epicID)

	raw, err := s.client.PostRaw(endpoint, nil, payload)
	if err != nil {
		return raw, fmt.Errorf("failed to update issues of epic %d/%d: %w", repoID, epicID, err)
	}

	logger.Debug("Updated issues of epic %d/%d (+%d/-%d)",
		repoID, epicID, len(payload.AddIssues), len(payload.RemoveIssues))
	return raw, nil
}

// ConvertIssueToEpic converts an existing issue into an epic
func (s *BoardService) ConvertIssueToEpic(repoID int64, issueID int, payload models.ConvertToEpicPayload) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("/repositories/%d/issues/%d/convert_to_epic", repoID, issueID)

	raw, err := s.client.PostRaw(endpoint, nil, payload)
	if err != nil {
		return raw, fmt.Errorf("failed to convert issue %d/%d to epic: %w", repoID, issueID, err)
	}

	logger.Info("Converted issue %d/%d to epic", repoID, issueID)
	return raw, nil
}

// SetEstimateForIssue sets the point estimate of an issue
func (s *BoardService) SetEstimateForIssue(repoID int64, issueID int, estimate float64) (*models.EstimateResult, error) {
	endpoint := fmt.Sprintf("/repositories/%d/issues/%d/estimate", repoID, issueID)
	payload := models.EstimatePayload{Estimate: estimate}

	var result models.EstimateResult
	if err := s.client.Put(endpoint, nil, payload, &result); err != nil {
		return &result, fmt.Errorf("failed to set estimate for issue %d/%d: %w", repoID, issueID, err)
	}

	logger.Info("Set estimate %.1f for issue %d/%d", estimate, repoID, issueID)
	return &result, nil
}
