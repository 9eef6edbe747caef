// Package render feeds assembled style mappings to an external renderer
// and collects per-figure outcomes.
//
// The engine never rasterizes anything itself: a Renderer is an injected
// capability. Failures are collected per item, never dropped, so the
// caller decides how to present partial results.
package render

import (
	"context"

	"github.com/jmylchreest/themelab/internal/figures"
	"github.com/jmylchreest/themelab/internal/rc"
)

// Renderer turns one figure's style mapping into raster output.
type Renderer interface {
	Render(ctx context.Context, figureID string, params rc.Params) ([]byte, error)
}

// Func adapts a plain function to the Renderer interface.
type Func func(ctx context.Context, figureID string, params rc.Params) ([]byte, error)

// Render implements Renderer.
func (f Func) Render(ctx context.Context, figureID string, params rc.Params) ([]byte, error) {
	return f(ctx, figureID, params)
}

// Outcome is the result for a single figure: either data or an error,
// never both.
type Outcome struct {
	ID   string
	File string
	Data []byte
	Err  error
}

// OK reports whether the figure rendered.
func (o Outcome) OK() bool { return o.Err == nil }

// All renders every assembly, fanning out across at most workers
// goroutines, and returns outcomes in assembly order. A context
// cancellation surfaces as the per-item error on every figure that had
// not finished.
func All(ctx context.Context, r Renderer, assemblies []figures.Assembly, workers int) []Outcome {
	if workers < 1 {
		workers = 1
	}
	if workers > len(assemblies) {
		workers = len(assemblies)
	}

	outcomes := make([]Outcome, len(assemblies))
	jobs := make(chan int)

	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for i := range jobs {
				asm := assemblies[i]
				out := Outcome{ID: asm.ID, File: asm.File}
				if err := ctx.Err(); err != nil {
					out.Err = err
				} else {
					out.Data, out.Err = r.Render(ctx, asm.ID, asm.Params)
				}
				outcomes[i] = out
				done <- struct{}{}
			}
		}()
	}

	go func() {
		for i := range assemblies {
			jobs <- i
		}
		close(jobs)
	}()

	for range assemblies {
		<-done
	}
	return outcomes
}

// Failed returns the outcomes that did not render.
func Failed(outcomes []Outcome) []Outcome {
	var out []Outcome
	for _, o := range outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}
