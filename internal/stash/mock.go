package stash

import (
	"context"
	"net/url"
	"sync"

	"stash-connect/internal/payload"
)

// Call registra una invocación recibida por MockClient.
type Call struct {
	Path string
	Form url.Values
}

// MockClient permite tests sin llamar al servicio real.
type MockClient struct {
	mu        sync.Mutex
	Responses map[string]payload.Record
	Errors    map[string]error
	Calls     []Call
}

func (m *MockClient) Post(_ context.Context, path string, form url.Values) (payload.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, Call{Path: path, Form: form})
	if err, ok := m.Errors[path]; ok {
		return nil, err
	}
	rec, ok := m.Responses[path]
	if !ok {
		return nil, classify(&APIError{StatusCode: 404, Path: path, Message: "not found"})
	}
	return rec, nil
}

// CallCount cuenta las llamadas a path.
func (m *MockClient) CallCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c.Path == path {
			n++
		}
	}
	return n
}
