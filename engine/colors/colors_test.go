package colors

import "testing"

func TestParse(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    Color
		wantErr bool
	}{
		"opaque white":   {in: "ffffffff", want: White},
		"six digits":     {in: "ff0000", want: Red},
		"leading hash":   {in: "#0000ffff", want: Blue},
		"half alpha":     {in: "00000080", want: Color{0, 0, 0, float32(0x80) / 255}},
		"too short":      {in: "fff", wantErr: true},
		"not hex":        {in: "zzzzzz", wantErr: true},
		"empty":          {in: "", wantErr: true},
		"seven digits":   {in: "fffffff", wantErr: true},
		"uppercase hex":  {in: "00FF00FF", want: Green},
		"transparent 00": {in: "00000000", want: Transparent},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, s := range []string{"0090ccff", "ffffffff", "12345678"} {
		if got := MustParse(s).Hex(); got != s {
			t.Fatalf("Hex(MustParse(%q)) = %q", s, got)
		}
	}
}
