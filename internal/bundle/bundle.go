// Package bundle assembles a downloadable zip for a theme: rendered
// figures, the serialized theme record, a .mplstyle file, a small HTML
// gallery, and per-figure reproduction scripts.
//
// Image bytes come from the caller (the external renderer); this package
// only arranges them.
package bundle

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/jmylchreest/themelab/internal/figures"
	"github.com/jmylchreest/themelab/internal/rc"
	"github.com/jmylchreest/themelab/internal/render"
	"github.com/jmylchreest/themelab/internal/theme"
)

// Input is everything a bundle needs. Outcomes may be nil for a
// metadata-only bundle (no figures/ entries).
type Input struct {
	Theme      *theme.Theme
	Assemblies []figures.Assembly
	Outcomes   []render.Outcome
}

// Filename returns the canonical download name for the bundle.
func Filename(t *theme.Theme) string {
	return t.Slug + "_bundle.zip"
}

// Build produces the zip archive in memory.
func Build(in Input) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	var rendered []render.Outcome
	for _, o := range in.Outcomes {
		if o.OK() {
			rendered = append(rendered, o)
		}
	}
	sort.Slice(rendered, func(i, j int) bool { return rendered[i].File < rendered[j].File })

	for _, o := range rendered {
		if err := writeEntry(zw, "figures/"+o.File, o.Data); err != nil {
			return nil, err
		}
	}

	themeJSON, err := json.MarshalIndent(in.Theme, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize theme: %w", err)
	}
	if err := writeEntry(zw, "theme.json", themeJSON); err != nil {
		return nil, err
	}

	style := rc.EncodeMplstyle(in.Theme.RCGlobal)
	if err := writeEntry(zw, "themes/"+in.Theme.Slug+".mplstyle", []byte(style)); err != nil {
		return nil, err
	}

	gallery, err := renderGallery(in.Theme, rendered)
	if err != nil {
		return nil, err
	}
	if err := writeEntry(zw, "index.html", gallery); err != nil {
		return nil, err
	}

	for _, asm := range in.Assemblies {
		script := reproScript(in.Theme, asm)
		name := "repro/repro_" + strings.TrimSuffix(asm.File, ".png") + ".py"
		if err := writeEntry(zw, name, []byte(script)); err != nil {
			return nil, err
		}
	}

	if failed := render.Failed(in.Outcomes); len(failed) > 0 {
		report := make(map[string]string, len(failed))
		for _, o := range failed {
			report[o.ID] = o.Err.Error()
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, err
		}
		if err := writeEntry(zw, "render_failures.json", data); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create zip entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write zip entry %s: %w", name, err)
	}
	return nil
}

var galleryTmpl = template.Must(template.New("gallery").Parse(`<!doctype html>
<html lang="en">
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Theme Gallery — {{.Name}}</title>
<style>
body{margin:0;padding:24px;font:14px/1.5 Inter,system-ui,sans-serif;background:{{.BG}};color:{{.FG}}}
.grid{display:grid;gap:16px;grid-template-columns:repeat(auto-fit,minmax(240px,1fr));}
figure{margin:0;background:rgba(0,0,0,.03);padding:12px;border-radius:12px;}
figcaption{margin-top:8px;opacity:.7}
img{width:100%;height:auto;display:block;border-radius:8px}
</style>
<h1>Theme Gallery — {{.Name}}</h1>
<div class="grid">{{range .Files}}<figure><img src="figures/{{.}}" alt="{{.}}"><figcaption>{{.}}</figcaption></figure>{{end}}</div>
</html>
`))

func renderGallery(t *theme.Theme, rendered []render.Outcome) ([]byte, error) {
	files := make([]string, len(rendered))
	for i, o := range rendered {
		files[i] = o.File
	}

	var buf bytes.Buffer
	err := galleryTmpl.Execute(&buf, struct {
		Name, BG, FG string
		Files        []string
	}{t.Name, t.BG.String(), t.FG.String(), files})
	if err != nil {
		return nil, fmt.Errorf("render gallery: %w", err)
	}
	return buf.Bytes(), nil
}

// reproScript emits a minimal Python script that applies the figure's
// merged rc mapping and saves a smoke-test plot under the same name.
func reproScript(t *theme.Theme, asm figures.Assembly) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Repro for %s (theme %q)\n", asm.File, t.Name)
	b.WriteString("import json\n")
	b.WriteString("import matplotlib as mpl, matplotlib.pyplot as plt\n")
	b.WriteString("mpl.use('agg', force=True)\n\n")

	params, _ := json.MarshalIndent(asm.Params, "", "  ")
	fmt.Fprintf(&b, "RC = json.loads('''%s''')\n", string(params))
	b.WriteString("cycle = RC.pop('axes.prop_cycle', None)\n")
	b.WriteString("RC = {k: tuple(v) if isinstance(v, list) else v for k, v in RC.items()}\n")
	b.WriteString("plt.rcParams.update({k: v for k, v in RC.items() if v is not None})\n")
	b.WriteString("if cycle:\n")
	b.WriteString("    plt.rcParams['axes.prop_cycle'] = mpl.cycler(cycle['key'], cycle['values'])\n\n")
	b.WriteString("fig, ax = plt.subplots()\n")
	b.WriteString("ax.plot([0, 1, 2], [0, 1, 0])\n")
	b.WriteString("ax.set_title('Style smoke test')\n")
	fmt.Fprintf(&b, "fig.savefig(%q)\n", asm.File)
	return b.String()
}
