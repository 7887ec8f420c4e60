package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"esports-digest/internal/domain"

	"github.com/bytedance/sonic"
)

type fileDocument struct {
	Chats map[string]fileEntry `json:"chats"`
}

type fileEntry struct {
	Name string `json:"name"`
}

// FileStore keeps destinations in a small JSON document:
//
//	{"chats": {"<id>": {"name": "<name>"}}}
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) ([]domain.ChatDestination, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var doc fileDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}

	out := make([]domain.ChatDestination, 0, len(doc.Chats))
	for id, e := range doc.Chats {
		out = append(out, domain.ChatDestination{ID: id, Name: e.Name})
	}
	return out, nil
}

// Save writes to a sibling temp file and renames it over the target.
func (s *FileStore) Save(ctx context.Context, destinations []domain.ChatDestination) error {
	doc := fileDocument{Chats: make(map[string]fileEntry, len(destinations))}
	for _, d := range destinations {
		doc.Chats[d.ID] = fileEntry{Name: d.Name}
	}

	raw, err := sonic.ConfigStd.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode destinations: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write destinations: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
