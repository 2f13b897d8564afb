package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boardhub/boardhub-go/internal/client"
	"github.com/boardhub/boardhub-go/internal/config"
	"github.com/boardhub/boardhub-go/internal/models"
)

// mockBoardServer simulates the BoardHub API for a single repository.
// Requests without the access token are rejected up front.
func mockBoardServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"authentication required"}`))
			return
		}

		switch {
		case r.Method == "GET" && r.URL.Path == "/p1/repositories/123/board":
			w.Write([]byte(`{"status":"OK","pipelines":[{"id":"p1","name":"Backlog","issues":[{"issue_number":7,"estimate":{"value":3},"is_epic":false}]},{"id":"p2","name":"In Progress","issues":[]}]}`))

		case r.Method == "GET" && r.URL.Path == "/p1/repositories/123/issues/7":
			w.Write([]byte(`{"estimate":{"value":8},"pipeline":{"name":"In Progress"},"is_epic":false}`))

		case r.Method == "GET" && r.URL.Path == "/p1/repositories/123/issues/7/events":
			w.Write([]byte(`[{"user_id":16717,"type":"estimateIssue","created_at":"2025-05-01T10:00:00Z","from_estimate":{"value":3},"to_estimate":{"value":8}}]`))

		case r.Method == "GET" && r.URL.Path == "/p1/repositories/123/epics":
			w.Write([]byte(`{"epic_issues":[{"issue_number":3,"repo_id":123,"issue_url":"https://example.com/owner/repo/issues/3"}]}`))

		case r.Method == "GET" && r.URL.Path == "/p1/repositories/123/epics/3":
			w.Write([]byte(`{"total_epic_estimates":{"value":10},"pipeline":{"name":"Backlog"},"issues":[{"issue_number":7,"repo_id":123,"estimate":{"value":8},"is_epic":false}]}`))

		case r.Method == "GET" && r.URL.Path == "/p1/repositories/123/epics/55":
			w.Write([]byte(`{"status":"Error","description":"not found"}`))

		case r.Method == "POST" && r.URL.Path == "/p1/repositories/123/epics/3/update_issues":
			var payload models.UpdateEpicIssuesPayload
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.Write([]byte(`{"removed_issues":[],"added_issues":[{"repo_id":123,"issue_number":7}]}`))

		case r.Method == "POST" && r.URL.Path == "/p1/repositories/123/issues/7/convert_to_epic":
			w.Write([]byte(`{"status":"Error","description":"already an epic"}`))

		case r.Method == "PUT" && r.URL.Path == "/p1/repositories/123/issues/9/estimate":
			// HTTP 200 with a failure status, which PUT must not inspect
			w.Write([]byte(`{"status":"Error"}`))

		case r.Method == "PUT" && r.URL.Path == "/p1/repositories/123/issues/7/estimate":
			var payload models.EstimatePayload
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(models.EstimateResult{Estimate: payload.Estimate})

		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
		}
	}))
}

func newTestService(baseURL string) *BoardService {
	cfg := config.NewConfig()
	cfg.Token = "test-token"
	cfg.BaseURL = baseURL
	cfg.Timeout = 5 * time.Second
	return NewBoardService(client.NewAPIClient(cfg))
}

func TestGetBoardExtractsPipelines(t *testing.T) {
	server := mockBoardServer()
	defer server.Close()

	pipelines, err := newTestService(server.URL).GetBoard(123)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pipelines) != 2 {
		t.Fatalf("expected 2 pipelines, got %d", len(pipelines))
	}
	if pipelines[0].ID != "p1" || pipelines[0].Name != "Backlog" {
		t.Errorf("unexpected first pipeline: %+v", pipelines[0])
	}
	if len(pipelines[0].Issues) != 1 || pipelines[0].Issues[0].IssueNumber != 7 {
		t.Errorf("unexpected issues: %+v", pipelines[0].Issues)
	}
	if pipelines[0].Issues[0].Estimate == nil || pipelines[0].Issues[0].Estimate.Value != 3 {
		t.Errorf("unexpected estimate: %+v", pipelines[0].Issues[0].Estimate)
	}
}

func TestGetIssue(t *testing.T) {
	server := mockBoardServer()
	defer server.Close()

	issue, err := newTestService(server.URL).GetIssue(123, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if issue.Estimate == nil || issue.Estimate.Value != 8 {
		t.Errorf("unexpected estimate: %+v", issue.Estimate)
	}
	if issue.Pipeline == nil || issue.Pipeline.Name != "In Progress" {
		t.Errorf("unexpected pipeline: %+v", issue.Pipeline)
	}
}

func TestGetIssueEvents(t *testing.T) {
	server := mockBoardServer()
	defer server.Close()

	events, err := newTestService(server.URL).GetIssueEvents(123, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].EventType != "estimateIssue" || events[0].UserID != 16717 {
		t.Errorf("unexpected event: %+v", events[0])
	}
	if events[0].ToEstimate == nil || events[0].ToEstimate.Value != 8 {
		t.Errorf("unexpected to_estimate: %+v", events[0].ToEstimate)
	}
}

func TestGetEpics(t *testing.T) {
	server := mockBoardServer()
	defer server.Close()

	epics, err := newTestService(server.URL).GetEpics(123)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(epics.EpicIssues) != 1 || epics.EpicIssues[0].IssueNumber != 3 {
		t.Errorf("unexpected epics: %+v", epics.EpicIssues)
	}
}

func TestGetEpicData(t *testing.T) {
	server := mockBoardServer()
	defer server.Close()

	epic, err := newTestService(server.URL).GetEpicData(123, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if epic.TotalEpicEstimates == nil || epic.TotalEpicEstimates.Value != 10 {
		t.Errorf("unexpected total estimates: %+v", epic.TotalEpicEstimates)
	}
	if len(epic.Issues) != 1 || epic.Issues[0].IssueNumber != 7 {
		t.Errorf("unexpected child issues: %+v", epic.Issues)
	}
}

func TestGetEpicDataNotFound(t *testing.T) {
	server := mockBoardServer()
	defer server.Close()

	epic, err := newTestService(server.URL).GetEpicData(123, 55)

	var statusErr *client.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Error() != "not found" {
		t.Errorf("unexpected message: %q", statusErr.Error())
	}
	if epic == nil {
		t.Fatal("expected a best-effort result alongside the error")
	}
}

func TestAddRemoveIssuesToEpic(t *testing.T) {
	server := mockBoardServer()
	defer server.Close()

	payload := models.UpdateEpicIssuesPayload{
		AddIssues: []models.IssueRef{{RepoID: 123, IssueNumber: 7}},
	}

	raw, err := newTestService(server.URL).AddRemoveIssuesToEpic(123, 3, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if _, ok := result["added_issues"]; !ok {
		t.Errorf("unexpected response: %v", result)
	}
}

func TestConvertIssueToEpicIgnoresStatus(t *testing.T) {
	server := mockBoardServer()
	defer server.Close()

	// The server answers with a failure status over HTTP 200; POST
	// responses are not inspected, so no error may surface.
	raw, err := newTestService(server.URL).ConvertIssueToEpic(123, 7, models.ConvertToEpicPayload{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if result["status"] != "Error" {
		t.Errorf("expected raw failure body, got %v", result)
	}
}

func TestSetEstimateForIssue(t *testing.T) {
	server := mockBoardServer()
	defer server.Close()

	result, err := newTestService(server.URL).SetEstimateForIssue(123, 7, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Estimate != 5 {
		t.Errorf("expected estimate 5, got %v", result.Estimate)
	}
}

func TestSetEstimateIgnoresFailureStatus(t *testing.T) {
	server := mockBoardServer()
	defer server.Close()

	if _, err := newTestService(server.URL).SetEstimateForIssue(123, 9, 3); err != nil {
		t.Fatalf("PUT must not synthesize status errors: %v", err)
	}
}

func TestHTTPErrorSurfacesAsTransportError(t *testing.T) {
	server := mockBoardServer()
	defer server.Close()

	_, err := newTestService(server.URL).GetBoard(999)
	if err == nil {
		t.Fatal("expected an error for unknown repository")
	}
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		t.Error("HTTP 404 must not surface as StatusError")
	}
}
