// Package registry remembers which chat destinations have issued commands.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"esports-digest/internal/domain"
	"esports-digest/internal/metrics"

	"github.com/rs/zerolog"
)

const DefaultName = "private chat"

var ErrEmptyID = errors.New("destination id is required")

// Store is the backing medium. Save always receives the complete set.
type Store interface {
	Load(ctx context.Context) ([]domain.ChatDestination, error)
	Save(ctx context.Context, destinations []domain.ChatDestination) error
}

// Registry is the only shared mutable state of the service. Every mutation
// holds the lock for the duration of the write-through.
type Registry struct {
	mu      sync.Mutex
	store   Store
	entries map[string]string
	logger  zerolog.Logger
	metrics metrics.Metrics
}

func New(store Store, logger zerolog.Logger, m metrics.Metrics) *Registry {
	return &Registry{
		store:   store,
		entries: make(map[string]string),
		logger:  logger,
		metrics: m,
	}
}

// Load replaces the in-memory set with the store's contents. An unreadable
// store leaves the registry empty.
func (r *Registry) Load(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]string)

	destinations, err := r.store.Load(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("destination store unreadable, starting empty")
		return
	}
	for _, d := range destinations {
		r.entries[d.ID] = d.Name
	}
	r.logger.Info().Int("count", len(r.entries)).Msg("destinations loaded")
}

// Register records id under name. The store is rewritten only when the
// entry is new or its name changed. It reports whether anything changed.
func (r *Registry) Register(ctx context.Context, id, name string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, ErrEmptyID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.entries[id]; ok && current == name {
		return false, nil
	}

	next := make(map[string]string, len(r.entries)+1)
	for k, v := range r.entries {
		next[k] = v
	}
	next[id] = name

	if err := r.store.Save(ctx, snapshot(next)); err != nil {
		r.metrics.IncRegistryWrite(false)
		r.logger.Error().Err(err).Str("id", id).Msg("failed to persist destination")
		return false, fmt.Errorf("failed to persist destination %s: %w", id, err)
	}

	r.metrics.IncRegistryWrite(true)
	r.entries = next
	r.logger.Info().Str("id", id).Str("name", name).Msg("destination registered")
	return true, nil
}

// List returns the destinations ordered by id.
func (r *Registry) List() []domain.ChatDestination {
	r.mu.Lock()
	defer r.mu.Unlock()
	return snapshot(r.entries)
}

func snapshot(entries map[string]string) []domain.ChatDestination {
	out := make([]domain.ChatDestination, 0, len(entries))
	for id, name := range entries {
		out = append(out, domain.ChatDestination{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
