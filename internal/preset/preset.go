// Package preset downloads and loads generator presets. A preset is a JSON
// fragment of config.Config; fields it omits keep their current values.
package preset

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	getter "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/cavegen/internal/config"
)

// Ext is the file extension of preset files.
const Ext = ".json"

// Fetch downloads src into dir and returns the preset files found there,
// sorted by path. src is any go-getter source, for example a local path,
// an https URL or "git::https://host/repo.git//presets".
func Fetch(ctx context.Context, src, dir string, log *slog.Logger) ([]string, error) {
	if src == "" {
		return nil, fmt.Errorf("preset source is required")
	}
	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working dir: %w", err)
	}
	// go-getter refuses to write a directory over an existing one.
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("clear %s: %w", dir, err)
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", filepath.Dir(dir), err)
	}

	log.Info("downloading presets", "src", src, "dir", dir)
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dir,
		Pwd:  pwd,
		Mode: getter.ClientModeAny,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}

	files, err := List(dir)
	if err != nil {
		return nil, err
	}
	log.Info("downloaded presets", "count", len(files))
	return files, nil
}

// List returns the preset files under dir, sorted by path. Local sources are
// fetched as symlinks, so dir is resolved first.
func List(dir string) ([]string, error) {
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if !d.IsDir() && filepath.Ext(path) == Ext {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// Name is the preset name derived from its file name.
func Name(path string) string {
	return strings.TrimSuffix(filepath.Base(path), Ext)
}

// Load overlays the preset at path onto cfg.
func Load(path string, cfg *config.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read preset: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse preset %s: %w", Name(path), err)
	}
	return nil
}
