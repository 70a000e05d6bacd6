package synth

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply for the MockProvider. Set Err to
// make the call fail instead of returning content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider serves scripted responses for tests and the demo
// command. The script drains front to back, and every request is kept
// in Calls so callers can inspect the prompts that were actually sent.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse

	Calls []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{queue: script}
}

// AddResponse appends one more scripted reply.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// Generate pops the next scripted reply. An exhausted script reads as
// the provider being down, which is also what it looks like to the
// retry layer.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.queue) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.queue[0]
	m.queue = m.queue[1:]

	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// CallCount reports how many Generate calls have been made so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
