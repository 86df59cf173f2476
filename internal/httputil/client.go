package httputil

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Getter is the read-only surface the remote catalog commands need from an
// HTTP client. *http.Client satisfies it, so production code passes
// http.DefaultClient and tests pass a StubClient.
type Getter interface {
	Get(url string) (*http.Response, error)
}

// stubResponse is one canned reply held by a StubClient.
type stubResponse struct {
	status int
	body   string
}

// StubClient is a Getter for tests. It records every URL requested and
// replays canned responses in the order they were stubbed; once the queue is
// exhausted, further requests get an empty 200. The zero value is ready to
// use.
type StubClient struct {
	mu    sync.Mutex
	urls  []string
	queue []stubResponse
	next  int

	// Err, when set, fails every Get with this error.
	Err error
}

// Stub queues one canned response.
func (c *StubClient) Stub(status int, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = append(c.queue, stubResponse{status: status, body: body})
}

// Get records the URL and replays the next canned response.
func (c *StubClient) Get(url string) (*http.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.urls = append(c.urls, url)
	if c.Err != nil {
		return nil, c.Err
	}

	status := http.StatusOK
	body := ""
	if c.next < len(c.queue) {
		status = c.queue[c.next].status
		body = c.queue[c.next].body
		c.next++
	}
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}, nil
}

// URLs returns the URLs requested so far, in order.
func (c *StubClient) URLs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.urls...)
}
