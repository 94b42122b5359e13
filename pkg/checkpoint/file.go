package checkpoint

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"github.com/matzehuels/coachmark/pkg/errors"
)

// FileStore is a file-based checkpoint store for CLI applications.
// Checkpoints are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based checkpoint store.
// If baseDir is empty, defaults to ~/.config/coachmark/checkpoints/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "coachmark", "checkpoints")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create checkpoint dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) path(tourID string) string {
	return filepath.Join(s.baseDir, tourID+".json")
}

func (s *FileStore) Load(ctx context.Context, tourID string) (Checkpoint, bool, error) {
	if err := errors.ValidateTourID(tourID); err != nil {
		return Checkpoint{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(tourID))
	if err != nil {
		if os.IsNotExist(err) {
			return Checkpoint{}, false, nil
		}
		return Checkpoint{}, false, errors.Wrap(errors.ErrCodeStore, err, "read checkpoint file")
	}

	var c Checkpoint
	if err := json.Unmarshal(data, &c); err != nil {
		return Checkpoint{}, false, errors.Wrap(errors.ErrCodeStore, err, "parse checkpoint %s", tourID)
	}
	return c, true, nil
}

func (s *FileStore) Save(ctx context.Context, c Checkpoint) error {
	if err := errors.ValidateTourID(c.TourID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "marshal checkpoint")
	}

	// Write through a temp file so a crash never leaves a torn checkpoint.
	tmp, err := os.CreateTemp(s.baseDir, c.TourID+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write checkpoint file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeStore, err, "write checkpoint file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write checkpoint file")
	}
	if err := os.Rename(tmp.Name(), s.path(c.TourID)); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write checkpoint file")
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, tourID string) error {
	if err := errors.ValidateTourID(tourID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(tourID)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStore, err, "remove checkpoint file")
	}
	return nil
}

// List returns the tour IDs that have a checkpoint.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read checkpoint dir")
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		ids = append(ids, entry.Name()[:len(entry.Name())-len(".json")])
	}
	return ids, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for checkpoint files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
