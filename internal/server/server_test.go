package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themelab/internal/colorspace"
	"github.com/jmylchreest/themelab/internal/config"
	"github.com/jmylchreest/themelab/internal/figures"
	"github.com/jmylchreest/themelab/internal/fonts"
	"github.com/jmylchreest/themelab/internal/palette"
	"github.com/jmylchreest/themelab/internal/rc"
	"github.com/jmylchreest/themelab/internal/render"
	"github.com/jmylchreest/themelab/internal/theme"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	cat, err := figures.Load()
	require.NoError(t, err)

	gen := theme.NewGenerator(palette.NewSynthesizer(palette.DefaultConfig()))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]Option{WithLogger(logger)}, opts...)
	return New(config.DefaultConfig(), gen, cat, opts...)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func composeTestTheme(t *testing.T) *theme.Theme {
	t.Helper()
	th, err := theme.Compose(theme.ComposeInput{
		Name:    "Porcelain",
		Mode:    palette.ModeLight,
		FG:      colorspace.MustHex("#111111"),
		BG:      colorspace.MustHex("#FAFAF7"),
		Accent:  colorspace.MustHex("#2E7FE8"),
		Palette: palette.Palette{"#AA3322", "#2E7FE8", "#3C9A5F", "#D0A030"},
		Seed:    7,
	})
	require.NoError(t, err)
	return th
}

func TestGenerate_Defaults(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/themes/generate", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.Token)
	require.Len(t, resp.Themes, theme.CarouselSize)

	var light, dark int
	for _, th := range resp.Themes {
		switch th.Mode {
		case palette.ModeLight:
			light++
		case palette.ModeDark:
			dark++
		}
		assert.Len(t, th.Palette, config.DefaultCount)
	}
	assert.Equal(t, 3, light)
	assert.Equal(t, 3, dark)
}

func TestGenerate_SameTokenReproducible(t *testing.T) {
	h := newTestServer(t).Routes()
	req := map[string]any{"token": "fixed-token"}

	first := doJSON(t, h, http.MethodPost, "/api/themes/generate", req)
	second := doJSON(t, h, http.MethodPost, "/api/themes/generate", req)

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
}

func TestGenerate_InvalidHex(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/themes/generate", map[string]any{"accent": "not-a-color"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_hex", decodeErr(t, rec).Code)
}

func TestGenerate_ContrastTooLow(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/themes/generate", map[string]any{
		"light_fg": "#EEEEEE",
		"light_bg": "#FFFFFF",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "contrast_too_low", decodeErr(t, rec).Code)
}

func TestGenerate_PaletteLength(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/themes/generate", map[string]any{
		"palette": []string{"#AA3322", "#2E7FE8"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "palette_length", decodeErr(t, rec).Code)
}

func TestGenerate_BadJSON(t *testing.T) {
	h := newTestServer(t).Routes()

	req := httptest.NewRequest(http.MethodPost, "/api/themes/generate", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_json", decodeErr(t, rec).Code)
}

func TestRender_NoRenderer(t *testing.T) {
	h := newTestServer(t).Routes()
	th := composeTestTheme(t)

	rec := doJSON(t, h, http.MethodPost, "/api/render", renderRequest{Theme: th})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp renderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "porcelain", resp.Slug)
	require.Len(t, resp.Figures, figures.ExpectedCount)
	for _, f := range resp.Figures {
		assert.Empty(t, f.Image)
		assert.Empty(t, f.Error)
		assert.GreaterOrEqual(t, len(f.Diff), figures.MinOverrideKeys)
	}
}

func TestRender_WithRenderer(t *testing.T) {
	renderer := render.Func(func(_ context.Context, figureID string, _ rc.Params) ([]byte, error) {
		if figureID == "heatmap" {
			return nil, errors.New("backend unavailable")
		}
		return []byte("png:" + figureID), nil
	})
	h := newTestServer(t, WithRenderer(renderer)).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/render", renderRequest{Theme: composeTestTheme(t)})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp renderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	var images, failures int
	for _, f := range resp.Figures {
		if f.Image != "" {
			images++
		}
		if f.ID == "heatmap" {
			assert.Equal(t, "backend unavailable", f.Error)
			failures++
		}
	}
	assert.Equal(t, figures.ExpectedCount-1, images)
	assert.Equal(t, 1, failures)
}

func TestRender_MissingTheme(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/render", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRender_RevalidatesRecord(t *testing.T) {
	h := newTestServer(t).Routes()
	th := composeTestTheme(t)

	// Tamper with the record after composition; the server must reject
	// it instead of trusting the wire payload.
	th.BG = colorspace.Color("#FFFFFF")
	th.FG = colorspace.Color("#EEEEEE")

	rec := doJSON(t, h, http.MethodPost, "/api/render", renderRequest{Theme: th})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "contrast_too_low", decodeErr(t, rec).Code)
}

func TestDownload(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/download", renderRequest{Theme: composeTestTheme(t)})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "porcelain_bundle.zip")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestCatalog(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp catalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Figures, figures.ExpectedCount)
}

func TestFonts_WithoutRegistry(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodGet, "/api/fonts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"fonts":[]}`, rec.Body.String())
}

func TestFonts_WithRegistry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Inter-Regular.ttf"), []byte("stub"), 0644))

	reg := fonts.NewRegistry(dir, nil)
	require.NoError(t, reg.Scan())

	h := newTestServer(t, WithFonts(reg)).Routes()

	rec := doJSON(t, h, http.MethodGet, "/api/fonts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp fontsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Inter-Regular"}, resp.Fonts)
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t).Routes()

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
