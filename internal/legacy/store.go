// Package legacy implements the flat-file project store used by clients that
// predate authentication: one directory per project holding PRD.md and UI.html.
package legacy

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"

	"github.com/irondev/iron-dev-agent/internal/artifacts"
)

var (
	ErrProjectNotFound = errors.New("legacy project not found")
	ErrInvalidID       = errors.New("invalid legacy project id")
	ErrNoLegacyFile    = errors.New("artifact has no legacy file")
)

// ProjectSummary is a directory listing entry.
type ProjectSummary struct {
	ID        string    `json:"id"`
	HasPRD    bool      `json:"hasPRD"`
	HasUI     bool      `json:"hasUI"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Project is the full content of a legacy directory.
type Project struct {
	ID  string `json:"id"`
	PRD string `json:"prd"`
	UI  string `json:"ui"`
}

type Store struct {
	fs billy.Filesystem
}

// NewStore roots the store at dir on the local disk.
func NewStore(dir string) *Store {
	return &Store{fs: osfs.New(dir)}
}

// NewMemoryStore is an in-memory store, used in tests.
func NewMemoryStore() *Store {
	return &Store{fs: memfs.New()}
}

// NewStoreFS wraps an existing filesystem.
func NewStoreFS(fs billy.Filesystem) *Store {
	return &Store{fs: fs}
}

// NewID generates a directory name for a project that has no database record.
func NewID() string {
	return uuid.NewString()
}

// validateID rejects anything that could escape the store root.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// Create makes the project directory. Existing directories are left alone.
func (s *Store) Create(id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.fs.MkdirAll(id, 0o755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	return nil
}

// Exists reports whether the project directory is present.
func (s *Store) Exists(id string) bool {
	if validateID(id) != nil {
		return false
	}
	info, err := s.fs.Stat(id)
	return err == nil && info.IsDir()
}

// List returns every project directory, most recently modified first.
func (s *Store) List() ([]ProjectSummary, error) {
	entries, err := s.fs.ReadDir("/")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []ProjectSummary{}, nil
		}
		return nil, fmt.Errorf("failed to read projects directory: %w", err)
	}

	projects := make([]ProjectSummary, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || validateID(entry.Name()) != nil {
			continue
		}
		summary := ProjectSummary{
			ID:        entry.Name(),
			UpdatedAt: entry.ModTime(),
		}
		if info, err := s.fs.Stat(path.Join(entry.Name(), artifacts.LegacyPRDFile)); err == nil {
			summary.HasPRD = true
			summary.UpdatedAt = latest(summary.UpdatedAt, info.ModTime())
		}
		if info, err := s.fs.Stat(path.Join(entry.Name(), artifacts.LegacyUIFile)); err == nil {
			summary.HasUI = true
			summary.UpdatedAt = latest(summary.UpdatedAt, info.ModTime())
		}
		projects = append(projects, summary)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})

	return projects, nil
}

// Get returns the content of both files. Missing files read as empty.
func (s *Store) Get(id string) (*Project, error) {
	if !s.Exists(id) {
		return nil, ErrProjectNotFound
	}

	prd, err := s.readFile(id, artifacts.LegacyPRDFile)
	if err != nil {
		return nil, err
	}
	ui, err := s.readFile(id, artifacts.LegacyUIFile)
	if err != nil {
		return nil, err
	}

	return &Project{ID: id, PRD: prd, UI: ui}, nil
}

// Delete removes the project directory.
func (s *Store) Delete(id string) error {
	if !s.Exists(id) {
		return ErrProjectNotFound
	}
	if err := util.RemoveAll(s.fs, id); err != nil {
		return fmt.Errorf("failed to delete project directory: %w", err)
	}
	return nil
}

// Read returns the mirrored content of slot, or "" when there is none.
func (s *Store) Read(id string, slot artifacts.Slot) (string, error) {
	if slot.LegacyFile == "" {
		return "", ErrNoLegacyFile
	}
	if validateID(id) != nil {
		return "", ErrInvalidID
	}
	return s.readFile(id, slot.LegacyFile)
}

// Write mirrors content into the slot's legacy file, creating the directory if needed.
func (s *Store) Write(id string, slot artifacts.Slot, content string) error {
	if slot.LegacyFile == "" {
		return ErrNoLegacyFile
	}
	if err := s.Create(id); err != nil {
		return err
	}
	if err := util.WriteFile(s.fs, path.Join(id, slot.LegacyFile), []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", slot.LegacyFile, err)
	}
	return nil
}

func (s *Store) readFile(id, name string) (string, error) {
	data, err := util.ReadFile(s.fs, path.Join(id, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

func latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
