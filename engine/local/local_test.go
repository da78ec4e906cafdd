package local

import "testing"

const (
	idHello = "0123456789abcdef"
	idScore = "00000000000000aa"
	idGold  = "fedcba9876543210"
)

type vars map[string]any

func (v vars) Get(key string) (any, bool) {
	x, ok := v[key]
	return x, ok
}

type fakeTypesetter struct {
	font  string
	scale float64
	brk   bool
}

func (f *fakeTypesetter) SetLanguageFont(font string) { f.font = font }
func (f *fakeTypesetter) SetSizeScale(scale float64)  { f.scale = scale }
func (f *fakeTypesetter) SetBreakWords(on bool)       { f.brk = on }

func testData() *Data {
	return &Data{
		Languages: []Language{
			{Name: "en-US", Scale: 1},
			{Name: "zh-CN", Font: "noto-sc", Scale: 1.1},
			{Name: "zh-TW", Font: "noto-tc"},
			{Name: "ja", Font: "noto-jp", Scale: 1},
		},
		List: []Entry{
			{ID: idHello, Contents: map[string]string{"en-US": "Hello", "zh-CN": "你好", "zh-TW": "你好"}},
			{ID: "folder", Children: []Entry{
				{ID: idScore, Contents: map[string]string{"en-US": "Gold: <global:" + idGold + ">!"}},
			}},
		},
	}
}

func TestSetLanguageAuto(t *testing.T) {
	tests := map[string]struct {
		system string
		want   string
	}{
		"exact":     {"ja", "ja"},
		"region":    {"ja-JP", "ja"},
		"remapped":  {"zh-HK", "zh-TW"},
		"singapore": {"zh-SG", "zh-TW"},
		"english":   {"en-GB", "en-US"},
		"unknown":   {"fr-FR", "en-US"},
		"garbage":   {"!!", "en-US"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := New(testData(), nil)
			l.SystemLanguage = func() string { return tt.system }
			l.SetLanguage("auto")
			if l.Active() != tt.want {
				t.Fatalf("active = %q, want %q", l.Active(), tt.want)
			}
			if l.Language() != "auto" {
				t.Fatalf("language = %q", l.Language())
			}
		})
	}
}

func TestSetLanguagePushesPrintSettings(t *testing.T) {
	l := New(testData(), nil)
	ts := &fakeTypesetter{}
	l.SetTypesetter(ts)
	var changes []string
	l.OnChange(func(active string) { changes = append(changes, active) })

	l.SetLanguage("zh-TW")
	if ts.font != "noto-tc" || ts.scale != 1 || !ts.brk {
		t.Fatalf("typesetter = %+v", ts)
	}
	l.SetLanguage("zh-TW")
	l.SetLanguage("de")
	if l.Active() != "en-US" || ts.brk {
		t.Fatalf("unknown language: active %q break %v", l.Active(), ts.brk)
	}
	if len(changes) != 2 || changes[1] != "en-US" {
		t.Fatalf("changes = %v", changes)
	}
}

func TestGetAndReplace(t *testing.T) {
	l := New(testData(), vars{idGold: 120})
	l.SetLanguage("en-US")

	if s, ok := l.Get(idScore); !ok || s != "Gold: 120!" {
		t.Fatalf("Get = %q %v", s, ok)
	}
	if _, ok := l.Get("missing"); ok {
		t.Fatal("missing id should not resolve")
	}

	tests := map[string]struct {
		in, want string
	}{
		"plain":   {"no tags", "no tags"},
		"ref":     {"<ref:" + idHello + "> world", "Hello world"},
		"unknown": {"<ref:1111111111111111>", "<ref:1111111111111111>"},
		"twice":   {"<ref:" + idHello + ">/<ref:" + idHello + ">", "Hello/Hello"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := l.Replace(tt.in); got != tt.want {
				t.Fatalf("Replace(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	l.SetLanguage("zh-CN")
	if got := l.Replace("<ref:" + idHello + ">"); got != "你好" {
		t.Fatalf("zh-CN = %q", got)
	}
	if _, ok := l.Get(idScore); ok {
		t.Fatal("text without a zh-CN entry should not resolve")
	}
}

func TestSystemLanguageFromEnv(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "C")
	t.Setenv("LANG", "zh_HK.UTF-8")
	if got := systemLanguage(); got != "zh-HK" {
		t.Fatalf("systemLanguage = %q", got)
	}
}
