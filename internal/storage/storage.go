package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/OCharnyshevich/cavegen/internal/config"
)

// Storage handles file-based persistence for config and generated layouts.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating subdirectories as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	dirs := []string{
		dir,
		filepath.Join(dir, "layouts"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return &Storage{dir: dir, log: log}, nil
}

// LoadConfig reads config.json into cfg. If the file does not exist, cfg is unchanged.
func (s *Storage) LoadConfig(cfg *config.Config) error {
	path := filepath.Join(s.dir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	s.log.Info("loaded config from file", "path", path)
	return nil
}

// SaveConfig writes cfg to config.json atomically.
func (s *Storage) SaveConfig(cfg *config.Config) error {
	path := filepath.Join(s.dir, "config.json")
	return s.atomicWriteJSON(path, cfg)
}

// SaveLayout writes layouts/<id>.json atomically.
func (s *Storage) SaveLayout(ld *LayoutData) error {
	if ld.ID == "" {
		return fmt.Errorf("layout id is required")
	}
	path := s.layoutPath(ld.ID)
	if err := s.atomicWriteJSON(path, ld); err != nil {
		return fmt.Errorf("save layout %s: %w", ld.ID, err)
	}
	s.log.Info("saved layout", "id", ld.ID, "seed", ld.Seed, "path", path)
	return nil
}

// LoadLayout reads layouts/<id>.json and returns the data, or nil if not found.
func (s *Storage) LoadLayout(id string) (*LayoutData, error) {
	data, err := os.ReadFile(s.layoutPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read layout %s: %w", id, err)
	}

	var ld LayoutData
	if err := json.Unmarshal(data, &ld); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", id, err)
	}
	return &ld, nil
}

func (s *Storage) layoutPath(id string) string {
	return filepath.Join(s.dir, "layouts", filepath.Base(id)+".json")
}

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func (s *Storage) atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
