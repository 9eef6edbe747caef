package render

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themelab/internal/figures"
	"github.com/jmylchreest/themelab/internal/rc"
)

func testAssemblies(n int) []figures.Assembly {
	out := make([]figures.Assembly, n)
	for i := range out {
		out[i] = figures.Assembly{
			ID:     fmt.Sprintf("fig-%d", i),
			File:   fmt.Sprintf("%02d_fig.png", i+1),
			Params: rc.Params{"figure.dpi": 200.0},
		}
	}
	return out
}

func TestAll_CollectsInOrder(t *testing.T) {
	r := Func(func(_ context.Context, id string, _ rc.Params) ([]byte, error) {
		return []byte("png:" + id), nil
	})

	outcomes := All(context.Background(), r, testAssemblies(5), 3)
	require.Len(t, outcomes, 5)

	for i, o := range outcomes {
		assert.Equal(t, fmt.Sprintf("fig-%d", i), o.ID)
		assert.True(t, o.OK())
		assert.Equal(t, []byte("png:"+o.ID), o.Data)
	}
}

func TestAll_PartialFailureIsExplicit(t *testing.T) {
	boom := errors.New("renderer crashed")
	r := Func(func(_ context.Context, id string, _ rc.Params) ([]byte, error) {
		if id == "fig-2" {
			return nil, boom
		}
		return []byte("ok"), nil
	})

	outcomes := All(context.Background(), r, testAssemblies(4), 2)
	require.Len(t, outcomes, 4)

	failed := Failed(outcomes)
	require.Len(t, failed, 1)
	assert.Equal(t, "fig-2", failed[0].ID)
	assert.ErrorIs(t, failed[0].Err, boom)

	// Other figures still succeeded.
	assert.True(t, outcomes[0].OK())
	assert.True(t, outcomes[3].OK())
}

func TestAll_BoundsWorkers(t *testing.T) {
	var active, peak atomic.Int32
	r := Func(func(_ context.Context, _ string, _ rc.Params) ([]byte, error) {
		cur := active.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		defer active.Add(-1)
		return []byte("ok"), nil
	})

	outcomes := All(context.Background(), r, testAssemblies(10), 2)
	require.Len(t, outcomes, 10)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := Func(func(ctx context.Context, _ string, _ rc.Params) ([]byte, error) {
		return []byte("ok"), ctx.Err()
	})

	outcomes := All(ctx, r, testAssemblies(3), 2)
	for _, o := range outcomes {
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
}

func TestAll_EmptyInput(t *testing.T) {
	r := Func(func(_ context.Context, _ string, _ rc.Params) ([]byte, error) {
		t.Fatal("renderer must not be called")
		return nil, nil
	})

	assert.Empty(t, All(context.Background(), r, nil, 4))
}
