package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/boardhub/boardhub-go/internal/config"
	"github.com/boardhub/boardhub-go/internal/logger"
)

// apiPath is the versioned path segment all endpoints live under.
const apiPath = "/p1"

// statusOK is the envelope value signalling application-level success.
const statusOK = "OK"

// APIClient handles all HTTP communication with the BoardHub API.
// The access token is attached to every request as a query parameter.
// Instances hold no mutable state after construction, so a single client
// may be shared by any number of concurrent callers.
type APIClient struct {
	config     *config.Config
	httpClient *http.Client
}

// NewAPIClient creates a new API client with the given configuration.
// No network activity happens here.
func NewAPIClient(cfg *config.Config) *APIClient {
	return &APIClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// BuildURL constructs a full URL for the given endpoint. Caller-supplied
// params are copied, never mutated, and the access token is set last so
// the client credential always wins on collision.
func (c *APIClient) BuildURL(endpoint string, params url.Values) string {
	query := url.Values{}
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	query.Set("access_token", c.config.Token)

	return fmt.Sprintf("%s%s%s?%s", c.config.BaseURL, apiPath, endpoint, query.Encode())
}

// StatusError is an application-level failure: the transport delivered a
// 2xx response whose body carried a status other than "OK".
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %q", e.Status)
}

// statusProbe picks the optional error-signalling fields out of an
// otherwise schema-less response body.
type statusProbe struct {
	Status       *string `json:"status"`
	Description  string  `json:"description"`
	ErrorMessage string  `json:"error_message"`
}

// checkStatus synthesizes a StatusError when the decoded body carries a
// status field that is not "OK". Bodies without the field, empty bodies
// and non-object bodies pass through untouched.
func checkStatus(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}

	var probe statusProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil
	}

	if probe.Status == nil || *probe.Status == statusOK {
		return nil
	}

	message := probe.Description
	if message == "" {
		message = probe.ErrorMessage
	}

	return &StatusError{Status: *probe.Status, Message: message}
}

// GetRaw makes a GET request and returns the undecoded response body.
// The body is returned even when a StatusError accompanies it, so callers
// always see what the server actually sent.
func (c *APIClient) GetRaw(endpoint string, params url.Values) (json.RawMessage, error) {
	raw, err := c.request(http.MethodGet, endpoint, params, nil)
	if err != nil {
		return raw, err
	}
	return raw, checkStatus(raw)
}

// PostRaw makes a POST request and returns the undecoded response body.
// The response status field is NOT inspected unless StrictStatus is set:
// a 2xx body carrying a failure status comes back with a nil error.
func (c *APIClient) PostRaw(endpoint string, params url.Values, body interface{}) (json.RawMessage, error) {
	return c.write(http.MethodPost, endpoint, params, body)
}

// PutRaw makes a PUT request with the same status-check behavior as PostRaw.
func (c *APIClient) PutRaw(endpoint string, params url.Values, body interface{}) (json.RawMessage, error) {
	return c.write(http.MethodPut, endpoint, params, body)
}

func (c *APIClient) write(method, endpoint string, params url.Values, body interface{}) (json.RawMessage, error) {
	raw, err := c.request(method, endpoint, params, body)
	if err != nil {
		return raw, err
	}
	if c.config.StrictStatus {
		return raw, checkStatus(raw)
	}
	return raw, nil
}

// Get makes a GET request and decodes the response body into result.
// When the server reports an application-level failure the body is still
// decoded best-effort before the StatusError is returned.
func (c *APIClient) Get(endpoint string, params url.Values, result interface{}) error {
	raw, err := c.GetRaw(endpoint, params)
	return decodeInto(raw, result, err)
}

// Post makes a POST request and decodes the response body into result
func (c *APIClient) Post(endpoint string, params url.Values, body, result interface{}) error {
	raw, err := c.PostRaw(endpoint, params, body)
	return decodeInto(raw, result, err)
}

// Put makes a PUT request and decodes the response body into result
func (c *APIClient) Put(endpoint string, params url.Values, body, result interface{}) error {
	raw, err := c.PutRaw(endpoint, params, body)
	return decodeInto(raw, result, err)
}

// decodeInto unmarshals raw into result without masking an earlier error.
// A decode failure only surfaces when the request itself succeeded.
func decodeInto(raw json.RawMessage, result interface{}, err error) error {
	if result == nil || len(raw) == 0 {
		return err
	}

	if decodeErr := json.Unmarshal(raw, result); decodeErr != nil && err == nil {
		return fmt.Errorf("error decoding response: %w", decodeErr)
	}

	return err
}

// request is the core HTTP request method
func (c *APIClient) request(method, endpoint string, params url.Values, body interface{}) (json.RawMessage, error) {
	url := c.BuildURL(endpoint, params)
	start := time.Now()
	logger.Debug("Starting %s request to %s%s", method, apiPath, endpoint)

	var requestBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error marshaling request body: %w", err)
		}
		requestBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		elapsed := time.Since(start)
		logger.Error("%s %s failed after %v: %v", method, endpoint, elapsed, err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	logger.Debug("%s %s completed in %v with status %d", method, endpoint, elapsed, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Error("%s %s: HTTP error %d: %s", method, endpoint, resp.StatusCode, string(raw))
		return raw, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(raw))
	}

	return raw, nil
}
