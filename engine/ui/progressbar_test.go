package ui

import (
	"math"
	"testing"
)

func TestProgressBarVertices(t *testing.T) {
	tests := map[string]struct {
		typ            string
		progress, step float64
		start, central float64
		want           []float32
	}{
		"horizontal quarter": {"horizontal", 0.25, 0, 0, 0, []float32{
			0, 0, 0, 0, 0, 32, 0, 1, 8, 32, 0.25, 1, 8, 0, 0.25, 0,
		}},
		"vertical stepped": {"vertical", 0.5, 10, 0, 0, []float32{
			0, 12, 0, 0.375, 0, 32, 0, 1, 32, 32, 1, 1, 32, 12, 1, 0.375,
		}},
		"round half": {"round", 0.5, 0, -90, 360, []float32{
			16, 16, 0.5, 0.5, 16, 0, 0.5, 0, 32, 0, 1, 0, 32, 32, 1, 1, 16, 32, 0.5, 1,
		}},
		"round full": {"round", 1, 0, -90, 360, []float32{
			16, 16, 0.5, 0.5, 16, 0, 0.5, 0, 32, 0, 1, 0, 32, 32, 1, 1, 0, 32, 0, 1, 0, 0, 0, 0, 16, 0, 0.5, 0,
		}},
		"round counterclockwise": {"round", 1, 0, -90, -90, []float32{
			16, 16, 0.5, 0.5, 0, 16, 0, 0.5, 0, 0, 0, 0, 16, 0, 0.5, 0,
		}},
		"round stepped": {"round", 0.3, 45, -90, 360, []float32{
			16, 16, 0.5, 0.5, 16, 0, 0.5, 0, 32, 0, 1, 0, 32, 16, 1, 0.5,
		}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			n := node("progressbar", "bar", 0, 0, 32, 32)
			n.Progress.Image = "bar"
			p := env.add(n).(*ProgressBar)
			p.SetType(tt.typ)
			p.SetStep(tt.step)
			p.SetAngles(tt.start, tt.central)
			p.SetProgress(tt.progress)

			p.Draw(env.renderer)
			if len(env.renderer.fans) != 1 {
				t.Fatalf("fans = %d, want 1", len(env.renderer.fans))
			}
			got := env.renderer.fans[0]
			if len(got) != len(tt.want) {
				t.Fatalf("fan = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-4 {
					t.Fatalf("fan[%d] = %v, want %v\n%v", i, got[i], tt.want[i], got)
				}
			}
		})
	}
}

func TestProgressBarSkipsEmptyFill(t *testing.T) {
	env := newTestEnv(t)
	n := node("progressbar", "bar", 0, 0, 32, 32)
	n.Progress.Image = "bar"
	p := env.add(n).(*ProgressBar)
	p.SetProgress(0)
	p.Draw(env.renderer)
	p.SetProgress(1)
	p.Hide()
	p.Draw(env.renderer)
	if len(env.renderer.fans) != 0 {
		t.Fatalf("fans = %d, want none", len(env.renderer.fans))
	}
}
