package glbackend

import (
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/groveui/engine/core"
)

func TestFlipRect(t *testing.T) {
	tests := map[string]struct {
		x, y, w, h, th int
		want           [4]int
	}{
		"top left":  {0, 0, 100, 50, 600, [4]int{0, 550, 100, 50}},
		"bottom":    {10, 550, 100, 50, 600, [4]int{10, 0, 100, 50}},
		"negative":  {5, 5, -3, -1, 100, [4]int{5, 95, 0, 0}},
		"offscreen": {0, 700, 10, 10, 600, [4]int{0, -110, 10, 10}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			x, y, w, h := flipRect(tt.x, tt.y, tt.w, tt.h, tt.th)
			if got := [4]int{x, y, w, h}; got != tt.want {
				t.Fatalf("flipRect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlendFor(t *testing.T) {
	tests := map[string]struct {
		mode core.BlendMode
		want blendParams
	}{
		"normal":   {core.BlendNormal, blendParams{true, gl.FUNC_ADD, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA}},
		"additive": {core.BlendAdditive, blendParams{true, gl.FUNC_ADD, gl.SRC_ALPHA, gl.ONE}},
		"subtract": {core.BlendSubtract, blendParams{true, gl.FUNC_REVERSE_SUBTRACT, gl.SRC_ALPHA, gl.ONE}},
		"max":      {core.BlendMax, blendParams{true, gl.MAX, gl.ONE, gl.ONE}},
		"copy":     {core.BlendCopy, blendParams{}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := blendFor(tt.mode); got != tt.want {
				t.Fatalf("blendFor(%v) = %+v, want %+v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestStencilFor(t *testing.T) {
	tests := map[string]struct {
		mode core.StencilMode
		want stencilParams
	}{
		"off":   {core.StencilOff, stencilParams{color: true}},
		"write": {core.StencilWrite, stencilParams{true, true, gl.ALWAYS, gl.REPLACE, false}},
		"test":  {core.StencilTest, stencilParams{true, false, gl.EQUAL, gl.KEEP, true}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := stencilFor(tt.mode); got != tt.want {
				t.Fatalf("stencilFor(%v) = %+v, want %+v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestCStr(t *testing.T) {
	if cstr("void main(){}") != "void main(){}\x00" || cstr("x\x00") != "x\x00" {
		t.Fatal("cstr should terminate exactly once")
	}
}
