package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/config"
	"github.com/ludo-technologies/codeguard/internal/fsutil"
)

// FileConfigStore implements domain.ConfigStore as a JSON file in the
// project root. Every Load reads the file again.
type FileConfigStore struct {
	path string
}

// NewFileConfigStore creates a store for the given configuration file path
func NewFileConfigStore(path string) *FileConfigStore {
	return &FileConfigStore{path: path}
}

// Path returns the config file path
func (s *FileConfigStore) Path() string {
	return s.path
}

// Exists reports whether the configuration file is present
func (s *FileConfigStore) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Load reads and parses the configuration file
func (s *FileConfigStore) Load() (domain.ProjectConfig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ProjectConfig{}, domain.NewConfigMissingError(s.path)
		}
		return domain.ProjectConfig{}, domain.NewConfigCorruptError(
			fmt.Sprintf("failed to read %s", s.path), err)
	}

	var cfg domain.ProjectConfig
	if err := json.Unmarshal(fsutil.StripBOM(data), &cfg); err != nil {
		return domain.ProjectConfig{}, domain.NewConfigCorruptError(
			fmt.Sprintf("invalid configuration file %s", s.path), err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, err
	}

	return cfg, nil
}

// Save writes the whole record atomically
func (s *FileConfigStore) Save(cfg domain.ProjectConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := fsutil.WriteJSONAtomic(s.path, cfg); err != nil {
		return domain.NewIOError(fmt.Sprintf("failed to write %s", s.path), err)
	}
	return nil
}

// MemoryConfigStore implements domain.ConfigStore in memory. The demo
// command uses it so that a walkthrough never touches the project file.
type MemoryConfigStore struct {
	mu  sync.RWMutex
	cfg *domain.ProjectConfig
}

// NewMemoryConfigStore creates an empty in-memory store
func NewMemoryConfigStore() *MemoryConfigStore {
	return &MemoryConfigStore{}
}

// Path returns a descriptive pseudo path
func (s *MemoryConfigStore) Path() string {
	return "(memory)"
}

// Exists reports whether a record has been saved
func (s *MemoryConfigStore) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg != nil
}

// Load returns a copy of the saved record
func (s *MemoryConfigStore) Load() (domain.ProjectConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg == nil {
		return domain.ProjectConfig{}, domain.NewConfigMissingError(s.Path())
	}
	return s.cfg.Clone(), nil
}

// Save stores a copy of the record
func (s *MemoryConfigStore) Save(cfg domain.ProjectConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := cfg.Clone()
	s.cfg = &c
	return nil
}

// InitProject merges the default record with overrides and persists it.
// Any existing record is replaced.
func InitProject(store domain.ConfigStore, overrides domain.ProjectOverrides) (domain.ProjectConfig, error) {
	merged := domain.MergeProjectConfig(config.DefaultProjectConfig(), overrides)
	if err := store.Save(merged); err != nil {
		return domain.ProjectConfig{}, err
	}
	return merged, nil
}
