package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu             sync.Mutex
	feedOK         map[string]int
	feedFailed     map[string]int
	commands       map[string]int
	durations      map[string][]float64
	registryWrites int
	registryFailed int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		feedOK:     make(map[string]int),
		feedFailed: make(map[string]int),
		commands:   make(map[string]int),
		durations:  make(map[string][]float64),
	}
}

func (m *Mock) IncFeedFetch(source string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.feedOK[source]++
		return
	}
	m.feedFailed[source]++
}

func (m *Mock) IncCommand(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[command]++
}

func (m *Mock) ObserveCommandDuration(command string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[command] = append(m.durations[command], seconds)
}

func (m *Mock) IncRegistryWrite(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.registryWrites++
		return
	}
	m.registryFailed++
}

// FeedOK returns how many fetches of source succeeded.
func (m *Mock) FeedOK(source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.feedOK[source]
}

// FeedFailed returns how many fetches of source failed.
func (m *Mock) FeedFailed(source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.feedFailed[source]
}

// Commands returns how many times command was recorded.
func (m *Mock) Commands(command string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commands[command]
}

// RegistryWrites returns the number of successful registry rewrites.
func (m *Mock) RegistryWrites() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registryWrites
}
