package calibration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const calibrationFile = "calibration.json"

// FileStore persists the calibration mapping as a JSON object on disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns ~/.config/blockassist/calibration.json, falling back
// to $HOME/.config when the user config dir cannot be determined.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "blockassist", calibrationFile)
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the calibration. A missing file means not calibrated.
func (s *FileStore) Load(ctx context.Context) (Calibration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Calibration{}, ErrNotCalibrated
	}
	if err != nil {
		return Calibration{}, fmt.Errorf("failed to read calibration: %w", err)
	}

	values := make(map[string]int)
	if err := json.Unmarshal(data, &values); err != nil {
		return Calibration{}, fmt.Errorf("failed to parse calibration %s: %w", s.path, err)
	}
	return Decode(values)
}

// Save writes the calibration, replacing any previous file.
func (s *FileStore) Save(ctx context.Context, c Calibration) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(Encode(c), "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create calibration dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write calibration: %w", err)
	}
	return os.Rename(tmp, s.path)
}

var _ Store = (*FileStore)(nil)
