package bundle

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themelab/internal/colorspace"
	"github.com/jmylchreest/themelab/internal/figures"
	"github.com/jmylchreest/themelab/internal/palette"
	"github.com/jmylchreest/themelab/internal/render"
	"github.com/jmylchreest/themelab/internal/theme"
)

func testTheme(t *testing.T) *theme.Theme {
	t.Helper()
	th, err := theme.Compose(theme.ComposeInput{
		Name:    "Porcelain",
		Mode:    palette.ModeLight,
		FG:      colorspace.MustHex("#111111"),
		BG:      colorspace.MustHex("#FAFAF7"),
		Accent:  colorspace.MustHex("#2E7FE8"),
		Palette: palette.Palette{"#AA3322", "#2E7FE8", "#3C9A5F"},
		Seed:    1,
	})
	require.NoError(t, err)
	return th
}

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string][]byte)
	for _, f := range zr.File {
		rd, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rd)
		require.NoError(t, err)
		require.NoError(t, rd.Close())
		out[f.Name] = content
	}
	return out
}

func TestBuild_Entries(t *testing.T) {
	th := testTheme(t)
	cat, err := figures.Load()
	require.NoError(t, err)
	assemblies := cat.AssembleAll(th)

	outcomes := []render.Outcome{
		{ID: "line", File: "01_line.png", Data: []byte("png-bytes")},
		{ID: "scatter", File: "02_scatter.png", Err: errors.New("renderer busy")},
	}

	data, err := Build(Input{Theme: th, Assemblies: assemblies, Outcomes: outcomes})
	require.NoError(t, err)

	entries := readZip(t, data)

	assert.Contains(t, entries, "figures/01_line.png")
	assert.NotContains(t, entries, "figures/02_scatter.png")
	assert.Contains(t, entries, "theme.json")
	assert.Contains(t, entries, "themes/porcelain.mplstyle")
	assert.Contains(t, entries, "index.html")
	assert.Contains(t, entries, "repro/repro_01_line.py")
	assert.Contains(t, entries, "repro/repro_10_gridspec.py")
	assert.Contains(t, entries, "render_failures.json")

	assert.Equal(t, []byte("png-bytes"), entries["figures/01_line.png"])
	assert.Contains(t, string(entries["render_failures.json"]), "renderer busy")
	assert.Contains(t, string(entries["theme.json"]), `"slug": "porcelain"`)
	assert.Contains(t, string(entries["themes/porcelain.mplstyle"]), "mathtext.fontset: stix")
}

func TestBuild_GalleryBindsThemeColors(t *testing.T) {
	th := testTheme(t)

	data, err := Build(Input{
		Theme:    th,
		Outcomes: []render.Outcome{{ID: "line", File: "01_line.png", Data: []byte("x")}},
	})
	require.NoError(t, err)

	html := string(readZip(t, data)["index.html"])
	assert.Contains(t, html, "#FAFAF7")
	assert.Contains(t, html, "#111111")
	assert.Contains(t, html, `src="figures/01_line.png"`)
	assert.Contains(t, html, "Porcelain")
}

func TestBuild_MetadataOnly(t *testing.T) {
	th := testTheme(t)

	data, err := Build(Input{Theme: th})
	require.NoError(t, err)

	entries := readZip(t, data)
	assert.Contains(t, entries, "theme.json")
	assert.Contains(t, entries, "themes/porcelain.mplstyle")
	assert.NotContains(t, entries, "render_failures.json")
	for name := range entries {
		assert.NotContains(t, name, "figures/")
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "porcelain_bundle.zip", Filename(testTheme(t)))
}
