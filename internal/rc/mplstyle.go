package rc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// section groups rcParams by key prefix for the .mplstyle output.
type section struct {
	title    string
	prefixes []string
}

// Section order mirrors the layout matplotlib's own matplotlibrc uses.
var sections = []section{
	{"Figures", []string{"figure."}},
	{"Axes", []string{"axes."}},
	{"Lines", []string{"lines."}},
	{"Ticks", []string{"xtick.", "ytick."}},
	{"Grid", []string{"grid."}},
	{"Legend", []string{"legend."}},
	{"Fonts & Text", []string{"font.", "text.", "mathtext."}},
	{"Savefig", []string{"savefig."}},
	{"Images & Colormaps", []string{"image.", "cmap.", "colormap."}},
	{"Patches / Hatches / Markers", []string{"patch.", "hatch.", "markers.", "marker.", "boxplot.", "hist."}},
	{"Other", nil},
}

// EncodeMplstyle renders the mapping as a grouped .mplstyle file. Keys
// with nil values are skipped (matplotlib expresses those as unset).
func EncodeMplstyle(p Params) string {
	grouped := make(map[int][]string)
	for _, k := range p.Keys() {
		grouped[sectionIndex(k)] = append(grouped[sectionIndex(k)], k)
	}

	var b strings.Builder
	for i, s := range sections {
		keys := grouped[i]
		if len(keys) == 0 {
			continue
		}
		sort.Strings(keys)
		fmt.Fprintf(&b, "# ---- %s ----\n", s.title)
		for _, k := range keys {
			if p[k] == nil {
				continue
			}
			fmt.Fprintf(&b, "%s: %s\n", k, formatValue(k, p[k]))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func sectionIndex(key string) int {
	for i, s := range sections {
		for _, prefix := range s.prefixes {
			if strings.HasPrefix(key, prefix) {
				return i
			}
		}
	}
	return len(sections) - 1
}

// formatValue renders a single rc value the way matplotlibrc wants it:
// True/False booleans, bare numbers, "w, h" figsize, cycler() for the
// color cycle, and quoting for strings that contain the comment char.
func formatValue(key string, v any) string {
	if key == "figure.figsize" {
		if pair, ok := v.([]any); ok && len(pair) == 2 {
			return fmt.Sprintf("%s, %s", formatValue("", pair[0]), formatValue("", pair[1]))
		}
	}

	switch t := v.(type) {
	case bool:
		if t {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int:
		return strconv.Itoa(t)
	case string:
		if strings.Contains(t, "#") {
			return "'" + t + "'"
		}
		return t
	case Cycle:
		quoted := make([]string, len(t.Values))
		for i, c := range t.Values {
			quoted[i] = "'" + c + "'"
		}
		return fmt.Sprintf("cycler('%s', [%s])", t.Key, strings.Join(quoted, ", "))
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = formatValue("", e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return fmt.Sprint(t)
	}
}
