package ui

import (
	"math"
	"slices"
	"testing"
)

func TestAnimationPlayerSetup(t *testing.T) {
	tests := map[string]struct {
		autoplay   bool
		wantPlayed float64
	}{
		"autoplay": {true, 16},
		"paused":   {false, 0},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			n := node("animation", "fx", 0, 0, 100, 50)
			n.Animation.Animation = "spark"
			n.Animation.Motion = "idle"
			n.Animation.Autoplay = tt.autoplay
			n.Animation.Rotatable = true
			n.Animation.Angle = 90
			n.Animation.Frame = 3
			a := env.add(n).(*Animation)
			p := env.animations.opened[0]

			if p.paused == tt.autoplay || p.motion != "idle" || !p.rotatable || a.Frame() != 3 {
				t.Fatalf("player = %+v", p)
			}
			if math.Abs(p.angle-math.Pi/2) > 1e-9 {
				t.Fatalf("angle = %v rad", p.angle)
			}
			env.m.Update(16)
			if p.played != tt.wantPlayed {
				t.Fatalf("played = %v, want %v", p.played, tt.wantPlayed)
			}
			a.Pause()
			env.m.Update(16)
			a.Play()
			env.m.Update(16)
			if p.played != tt.wantPlayed+16 {
				t.Fatalf("played = %v after resume", p.played)
			}
		})
	}
}

func TestAnimationDrawsCenteredAndEnds(t *testing.T) {
	env := newTestEnv(t)
	n := node("animation", "fx", 10, 20, 100, 50, "ended")
	n.Animation.Animation = "spark"
	n.Animation.OffsetX = 5
	n.Animation.OffsetY = -5
	a := env.add(n).(*Animation)
	p := env.animations.opened[0]

	a.Resize()
	a.Draw(env.renderer)
	a.SetOffset(0, 0)
	p.finished = true
	a.Draw(env.renderer)
	if want := [][2]float64{{65, 40}, {60, 45}}; !slices.Equal(p.drawnAt, want) {
		t.Fatalf("drawn at %v, want %v", p.drawnAt, want)
	}
	if env.commands.has("fx", "ended") {
		t.Fatal("ended should wait for the deferred flush")
	}
	env.m.Update(0)
	if !env.commands.has("fx", "ended") {
		t.Fatal("ended was not emitted")
	}
}

func TestAnimationReplaceAndDestroy(t *testing.T) {
	env := newTestEnv(t)
	n := node("animation", "fx", 0, 0, 10, 10)
	n.Animation.Animation = "spark"
	a := env.add(n).(*Animation)

	a.SetAnimation("smoke")
	a.SetAnimation("missing")
	if a.Player() != nil || a.Frame() != -1 {
		t.Fatal("unknown animation should leave the element empty")
	}
	a.SetFrame(4)
	a.SetAnimation("spark")
	a.Destroy()

	opened := env.animations.opened
	if len(opened) != 3 {
		t.Fatalf("opened %d players", len(opened))
	}
	for _, p := range opened {
		if !p.destroyed {
			t.Fatalf("player %q was not destroyed", p.id)
		}
	}
}
