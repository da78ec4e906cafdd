package ui

import (
	"testing"

	"github.com/hubastard/groveui/engine/core"
)

func numberBox(env *testEnv) *TextBox {
	n := node("textbox", "age", 0, 0, 100, 20, "change")
	n.TextBox.Type = "number"
	n.TextBox.Number = 5
	n.TextBox.Min = 0
	n.TextBox.Max = 100
	n.TextBox.Decimals = 1
	return env.add(n).(*TextBox)
}

func TestTextBoxNumberCommit(t *testing.T) {
	tests := map[string]struct {
		typed  string
		commit string
		want   float64
		text   string
	}{
		"clamped on enter": {"123.456", "enter", 100, "100"},
		"rounded on enter": {"42.26", "enter", 42.3, "42.3"},
		"clamped on blur":  {"-3", "blur", 0, "0"},
		"rounded on blur":  {"9.96", "blur", 10, "10"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			tb := numberBox(env)
			tb.Focus()
			env.m.HandleEvent(core.EventKey{Key: core.KeyA, Mods: core.ModCtrl, Down: true})
			for _, r := range tt.typed {
				env.m.HandleEvent(core.EventChar{Rune: r})
			}
			if got := tb.input.String(); got != tt.typed {
				t.Fatalf("typed %q, want %q before commit", got, tt.typed)
			}

			switch tt.commit {
			case "enter":
				env.m.HandleEvent(core.EventKey{Key: core.KeyEnter, Down: true})
			case "blur":
				tb.Blur()
			}
			if got := tb.input.String(); got != tt.text || tb.Number() != tt.want {
				t.Fatalf("committed %q (%v), want %q", got, tb.Number(), tt.text)
			}
			if !env.commands.has("age", "change") {
				t.Fatal("commit should emit change")
			}
		})
	}
}

func TestTextBoxNumberRejectsLettersAndSteps(t *testing.T) {
	env := newTestEnv(t)
	tb := numberBox(env)
	tb.SetNumber(99.5)
	tb.Focus()
	env.m.HandleEvent(core.EventChar{Rune: 'x'})
	if got := tb.input.String(); got != "99.5" {
		t.Fatalf("letter typed into number box: %q", got)
	}
	for range 2 {
		env.m.HandleEvent(core.EventKey{Key: core.KeyUp, Down: true})
	}
	if tb.Number() != 100 {
		t.Fatalf("number = %v, want clamped 100", tb.Number())
	}
	if tb.Text() != "" {
		t.Fatal("number boxes have no text")
	}
}
