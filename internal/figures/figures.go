// Package figures holds the fixed catalog of figure archetypes and
// assembles per-figure style mappings from a composed theme.
//
// The catalog is external configuration: it is validated once when
// loaded, and a defective entry halts startup rather than surfacing per
// request.
package figures

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/themelab/internal/fault"
	"github.com/jmylchreest/themelab/internal/rc"
	"github.com/jmylchreest/themelab/internal/theme"
)

// Catalog shape requirements.
const (
	ExpectedCount   = 10
	MinOverrideKeys = 7
)

// Spec is one figure archetype: an id plus the rc overrides that tune
// the renderer for that figure shape. Overrides include the catalog-wide
// common block.
type Spec struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	File      string    `json:"file"`
	Overrides rc.Params `json:"rc_overrides"`
}

// Catalog is the validated set of figure specs, in file order.
type Catalog struct {
	specs []Spec
}

// catalogFile is the TOML shape of a catalog document.
type catalogFile struct {
	Common  map[string]any `toml:"common"`
	Figures []struct {
		ID    string         `toml:"id"`
		Title string         `toml:"title"`
		File  string         `toml:"file"`
		RC    map[string]any `toml:"rc"`
	} `toml:"figure"`
}

// Parse decodes and validates a catalog document. Any defect returns a
// catalog_misconfigured ConfigError; callers should treat that as fatal.
func Parse(data []byte) (*Catalog, error) {
	var doc catalogFile
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &fault.ConfigError{
			Kind:    fault.KindCatalogMisconfigured,
			Message: "catalog is not valid TOML",
			Err:     err,
		}
	}

	if len(doc.Figures) != ExpectedCount {
		return nil, fault.Configf(fault.KindCatalogMisconfigured,
			"catalog must define exactly %d figures, found %d", ExpectedCount, len(doc.Figures))
	}

	common := rc.Normalize(doc.Common)
	specs := make([]Spec, 0, ExpectedCount)
	seen := make(map[string]struct{}, ExpectedCount)

	for _, f := range doc.Figures {
		if f.ID == "" || f.File == "" {
			return nil, fault.Configf(fault.KindCatalogMisconfigured,
				"catalog entry %q is missing an id or file", f.ID)
		}
		if _, dup := seen[f.ID]; dup {
			return nil, fault.Configf(fault.KindCatalogMisconfigured,
				"duplicate figure id %q", f.ID)
		}
		seen[f.ID] = struct{}{}

		overrides := common.Merge(rc.Normalize(f.RC))
		if len(overrides) < MinOverrideKeys {
			return nil, fault.Configf(fault.KindCatalogMisconfigured,
				"figure %q overrides %d keys, need at least %d", f.ID, len(overrides), MinOverrideKeys)
		}

		specs = append(specs, Spec{ID: f.ID, Title: f.Title, File: f.File, Overrides: overrides})
	}

	return &Catalog{specs: specs}, nil
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// Specs returns the catalog entries in display order. The slice is a
// copy; the catalog itself stays immutable.
func (c *Catalog) Specs() []Spec {
	out := make([]Spec, len(c.specs))
	copy(out, c.specs)
	return out
}

// Get looks up a spec by figure id.
func (c *Catalog) Get(id string) (Spec, bool) {
	for _, s := range c.specs {
		if s.ID == id {
			return s, true
		}
	}
	return Spec{}, false
}

// Len reports the number of entries.
func (c *Catalog) Len() int { return len(c.specs) }

// Assembly is the final per-figure output: the fully merged style
// mapping plus the keys that differ from the renderer's documented
// defaults.
type Assembly struct {
	ID     string    `json:"id"`
	File   string    `json:"file"`
	Params rc.Params `json:"rc"`
	Diff   rc.Params `json:"rc_diff"`
}

// Assemble merges the theme's global mapping with the spec's overrides
// (override wins) and diffs the result against the base defaults. Pure
// and stateless.
func Assemble(t *theme.Theme, spec Spec) Assembly {
	merged := t.RCGlobal.Merge(spec.Overrides)
	return Assembly{
		ID:     spec.ID,
		File:   spec.File,
		Params: merged,
		Diff:   merged.Diff(rc.Defaults()),
	}
}

// AssembleAll assembles every catalog entry for the theme, in catalog
// order.
func (c *Catalog) AssembleAll(t *theme.Theme) []Assembly {
	out := make([]Assembly, len(c.specs))
	for i, s := range c.specs {
		out[i] = Assemble(t, s)
	}
	return out
}
