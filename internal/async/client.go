package async

import (
	"net/url"

	"github.com/boardhub/boardhub-go/internal/client"
)

// Result pairs a decoded value with the request error, preserving the
// two-value completion contract of the API: on an application-level
// failure Value still holds whatever the server sent.
type Result[T any] struct {
	Value T
	Err   error
}

// Client provides a clean API for async operations
type Client struct {
	api *client.APIClient
}

// NewClient creates a new async client around the given API client
func NewClient(api *client.APIClient) *Client {
	return &Client{
		api: api,
	}
}

// Get performs an async GET request with typed response. Exactly one
// Result is delivered on the returned channel, which is then closed.
func Get[T any](c *Client, endpoint string, params url.Values) <-chan Result[T] {
	return dispatch[T](func(value *T) error {
		return c.api.Get(endpoint, params, value)
	})
}

// Post performs an async POST request with typed response
func Post[T any](c *Client, endpoint string, params url.Values, body interface{}) <-chan Result[T] {
	return dispatch[T](func(value *T) error {
		return c.api.Post(endpoint, params, body, value)
	})
}

// Put performs an async PUT request with typed response
func Put[T any](c *Client, endpoint string, params url.Values, body interface{}) <-chan Result[T] {
	return dispatch[T](func(value *T) error {
		return c.api.Put(endpoint, params, body, value)
	})
}

// dispatch runs the call in its own goroutine. The channel is buffered so
// the send never blocks on a caller that gave up waiting.
func dispatch[T any](call func(*T) error) <-chan Result[T] {
	resultChan := make(chan Result[T], 1)

	go func() {
		var value T
		err := call(&value)
		resultChan <- Result[T]{Value: value, Err: err}
		close(resultChan)
	}()

	return resultChan
}
