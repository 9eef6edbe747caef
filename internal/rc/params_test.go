package rc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_OverrideWins(t *testing.T) {
	base := Params{"grid.alpha": 0.1, "axes.grid": true}
	overlay := Params{"grid.alpha": 0.2, "grid.linestyle": ":"}

	merged := base.Merge(overlay)

	assert.Equal(t, 0.2, merged["grid.alpha"])
	assert.Equal(t, true, merged["axes.grid"])
	assert.Equal(t, ":", merged["grid.linestyle"])

	// Inputs untouched.
	assert.Equal(t, 0.1, base["grid.alpha"])
	assert.NotContains(t, base, "grid.linestyle")
}

func TestDiff(t *testing.T) {
	base := Params{
		"figure.dpi": 100.0,
		"axes.grid":  false,
		"font.size":  10.0,
	}
	p := Params{
		"figure.dpi":   200.0, // changed
		"axes.grid":    false, // same
		"font.size":    10.0,  // same
		"custom.thing": 1.0,   // not in base
	}

	diff := p.Diff(base)

	assert.Equal(t, Params{"figure.dpi": 200.0}, diff)
}

func TestDiff_NumericNormalization(t *testing.T) {
	// Values decoded from TOML arrive as int64; they must compare equal
	// to the float64 defaults.
	base := Params{"figure.dpi": 100.0}
	p := Params{"figure.dpi": int64(100)}

	assert.Empty(t, p.Diff(base))
}

func TestCycleJSONRoundTrip(t *testing.T) {
	p := Params{
		"axes.prop_cycle": Cycle{Key: "color", Values: []string{"#AA0000", "#00BB00", "#0000CC"}},
		"figure.dpi":      200.0,
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"axes.prop_cycle":{"key":"color","values":["#AA0000","#00BB00","#0000CC"]}`)

	var back Params
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Normalize(p), back)
}

func TestMarshalDeterministic(t *testing.T) {
	p := Params{"b.key": 1.0, "a.key": "x", "c.key": true}

	first, err := json.Marshal(p)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestNormalize_CycleShape(t *testing.T) {
	raw := Params{
		"axes.prop_cycle": map[string]any{
			"key":    "color",
			"values": []any{"#AA0000", "#00BB00"},
		},
	}

	got := Normalize(raw)
	assert.Equal(t, Cycle{Key: "color", Values: []string{"#AA0000", "#00BB00"}}, got["axes.prop_cycle"])
}

func TestDefaults_FreshCopy(t *testing.T) {
	a := Defaults()
	a["figure.dpi"] = 999.0
	assert.Equal(t, 100.0, Defaults()["figure.dpi"])
}
