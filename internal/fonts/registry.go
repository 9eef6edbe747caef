// Package fonts maintains a read-only registry of font files available
// to the external renderer. The registry is input data for theme
// composition (font family preferences); this package never registers or
// mutates fonts itself.
package fonts

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Font is one discovered font file.
type Font struct {
	Name string `json:"name"` // file name without extension
	Path string `json:"path"`
}

// Registry scans a directory for font files. Safe for concurrent use.
type Registry struct {
	dir    string
	logger *slog.Logger

	mu    sync.RWMutex
	fonts []Font
}

// NewRegistry builds a registry over dir. Call Scan before reading.
func NewRegistry(dir string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{dir: dir, logger: logger}
}

// Dir returns the scanned directory.
func (r *Registry) Dir() string { return r.dir }

// Scan walks the directory picking up .ttf and .otf files. A missing
// directory is not an error: it yields an empty registry, matching the
// "optional registry" contract.
func (r *Registry) Scan() error {
	var found []Font

	err := filepath.WalkDir(r.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		found = append(found, Font{Name: name, Path: path})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			found = nil
		} else {
			return err
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })

	r.mu.Lock()
	r.fonts = found
	r.mu.Unlock()

	r.logger.Debug("font registry scanned", "dir", r.dir, "count", len(found))
	return nil
}

// Fonts returns a copy of the discovered fonts.
func (r *Registry) Fonts() []Font {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Font, len(r.fonts))
	copy(out, r.fonts)
	return out
}

// Names returns the discovered font names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.fonts))
	for i, f := range r.fonts {
		out[i] = f.Name
	}
	return out
}

// Has reports whether a font with the given name (case-insensitive,
// extension ignored) is available.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.fonts {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}
