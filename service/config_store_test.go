package service

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/config"
)

func TestFileConfigStore_LoadMissing(t *testing.T) {
	store := NewFileConfigStore(filepath.Join(t.TempDir(), "codeguard.config.json"))

	if store.Exists() {
		t.Error("Expected Exists() false for a missing file")
	}
	_, err := store.Load()
	if !errors.Is(err, domain.ErrConfigMissing) {
		t.Errorf("Expected ErrConfigMissing, got %v", err)
	}
}

func TestFileConfigStore_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", "{not json"},
		{"connected without timestamp", `{"projectName":"x","connected":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "codeguard.config.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := NewFileConfigStore(path).Load()
			if domain.ErrorCode(err) != domain.ErrCodeConfigCorrupt {
				t.Errorf("Expected CONFIG_CORRUPT, got %v", err)
			}
		})
	}
}

func TestFileConfigStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codeguard.config.json")
	if err := os.WriteFile(path, []byte("\ufeff"+`{"projectName":"shop","team":{"owner":"web"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewFileConfigStore(path)

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ProjectName != "shop" {
		t.Errorf("Expected projectName shop, got %q", cfg.ProjectName)
	}

	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	cfg.Connected = true
	cfg.ConnectedAt = &at
	if err := store.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"team"`) {
		t.Errorf("Expected unknown key to survive, got %s", data)
	}

	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if !reloaded.Connected || !reloaded.ConnectedAt.Equal(at) {
		t.Errorf("Expected connected state to persist, got %+v", reloaded)
	}
}

func TestFileConfigStore_SaveRejectsInvalidRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codeguard.config.json")
	store := NewFileConfigStore(path)

	err := store.Save(domain.ProjectConfig{Connected: true})
	if !errors.Is(err, domain.ErrConfigCorrupt) {
		t.Errorf("Expected ErrConfigCorrupt, got %v", err)
	}
	if store.Exists() {
		t.Error("Invalid record must not be written")
	}
}

func TestFileConfigStore_SaveFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	store := NewFileConfigStore(filepath.Join(blocker, "codeguard.config.json"))

	err := store.Save(config.DefaultProjectConfig())
	if !errors.Is(err, domain.ErrIOFailure) {
		t.Errorf("Expected ErrIOFailure, got %v", err)
	}
}

func TestMemoryConfigStore(t *testing.T) {
	store := NewMemoryConfigStore()
	if store.Exists() {
		t.Error("New store should be empty")
	}
	if _, err := store.Load(); !errors.Is(err, domain.ErrConfigMissing) {
		t.Errorf("Expected ErrConfigMissing, got %v", err)
	}

	cfg := config.DefaultProjectConfig()
	if err := store.Save(cfg); err != nil {
		t.Fatal(err)
	}
	cfg.Rules["security"] = false

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Rules["security"] {
		t.Error("Store must keep its own copy of the record")
	}
}

func TestInitProject(t *testing.T) {
	store := NewMemoryConfigStore()

	cfg, err := InitProject(store, domain.ProjectOverrides{
		ProjectName: "shop",
		Rules:       map[string]bool{"accessibility": false},
	})
	if err != nil {
		t.Fatalf("InitProject failed: %v", err)
	}

	defaults := config.DefaultProjectConfig()
	if cfg.ProjectName != "shop" || cfg.Language != defaults.Language {
		t.Errorf("Unexpected scalars: %+v", cfg)
	}
	if cfg.Rules["accessibility"] || !cfg.Rules["security"] {
		t.Errorf("Expected per-key rule merge, got %v", cfg.Rules)
	}
	if cfg.Connected {
		t.Error("A fresh project must not be connected")
	}
	if !store.Exists() {
		t.Error("Expected record to be persisted")
	}
}
