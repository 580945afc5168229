package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockCaller is a scripted Caller implementation for testing checks without
// a live endpoint.
type MockCaller struct {
	mu       sync.Mutex
	results  map[string]any
	errors   map[string]error
	calls    []string
	endpoint string
}

// NewMockCaller creates a MockCaller with no scripted responses.
func NewMockCaller() *MockCaller {
	return &MockCaller{
		results:  make(map[string]any),
		errors:   make(map[string]error),
		endpoint: "mock://endpoint",
	}
}

// Respond scripts a successful result for a method.
func (m *MockCaller) Respond(method string, result any) *MockCaller {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[method] = result
	delete(m.errors, method)
	return m
}

// Fail scripts an error for a method.
func (m *MockCaller) Fail(method string, err error) *MockCaller {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[method] = err
	delete(m.results, method)
	return m
}

// Calls returns the methods invoked, in order.
func (m *MockCaller) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockCaller) Endpoint() string {
	return m.endpoint
}

func (m *MockCaller) Call(_ context.Context, method string, _ any, result any) error {
	m.mu.Lock()
	m.calls = append(m.calls, method)
	err, hasErr := m.errors[method]
	scripted, hasResult := m.results[method]
	m.mu.Unlock()

	if hasErr {
		return err
	}
	if !hasResult {
		return fmt.Errorf("mock: no response scripted for %s", method)
	}
	if result == nil {
		return nil
	}

	// Round-trip through JSON so scripted values decode the same way a real
	// response body would.
	data, err := json.Marshal(scripted)
	if err != nil {
		return fmt.Errorf("mock: marshaling scripted %s result: %w", method, err)
	}
	return json.Unmarshal(data, result)
}
