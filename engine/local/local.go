// Package local resolves localized text and tracks the active language.
package local

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/hubastard/groveui/engine/core"
	"golang.org/x/text/language"
)

var logger = core.NewLogger("local")

var (
	refPattern    = regexp.MustCompile(`<ref:([0-9a-f]{16})>`)
	globalPattern = regexp.MustCompile(`<global:([0-9a-f]{16})>`)
)

// remap folds regional variants onto the language pack that serves them.
var remap = map[string]string{
	"zh-HK": "zh-TW",
	"zh-SG": "zh-TW",
}

// breakLanguages wrap at any character instead of at word boundaries.
var breakLanguages = []string{"zh-CN", "zh-TW", "ja", "ko"}

// Language is one configured language pack.
type Language struct {
	Name  string  `json:"name"`
	Font  string  `json:"font"`
	Scale float64 `json:"scale"`
}

// Entry is a localized text, or a folder of entries when Children is set.
type Entry struct {
	ID       string            `json:"id"`
	Contents map[string]string `json:"contents"`
	Children []Entry           `json:"children,omitempty"`
}

// Data is the contents of a localization file.
type Data struct {
	Languages []Language `json:"languages"`
	List      []Entry    `json:"list"`
}

// Variables resolves <global:id> tags.
type Variables interface {
	Get(key string) (any, bool)
}

// Typesetter receives per-language print settings.
type Typesetter interface {
	SetLanguageFont(font string)
	SetSizeScale(scale float64)
	SetBreakWords(on bool)
}

// content is a text split around its <global:id> tags. Odd slots are
// variable keys.
type content []string

func compile(s string) content {
	var out content
	last := 0
	for _, m := range globalPattern.FindAllStringSubmatchIndex(s, -1) {
		out = append(out, s[last:m[0]], s[m[2]:m[3]])
		last = m[1]
	}
	return append(out, s[last:])
}

func (c content) render(vars Variables) string {
	if len(c) == 1 {
		return c[0]
	}
	var sb strings.Builder
	for i, part := range c {
		if i%2 == 0 {
			sb.WriteString(part)
			continue
		}
		if vars == nil {
			continue
		}
		if v, ok := vars.Get(part); ok {
			fmt.Fprint(&sb, v)
		}
	}
	return sb.String()
}

// Local serves localized text for the active language. It is not safe for
// concurrent use.
type Local struct {
	languages []Language
	texts     map[string]map[string]content
	vars      Variables
	typeset   Typesetter
	listeners []func(active string)

	language string
	active   string

	// SystemLanguage reports the user's locale for "auto". It defaults to
	// the POSIX locale environment.
	SystemLanguage func() string
}

func New(d *Data, vars Variables) *Local {
	l := &Local{
		texts:          map[string]map[string]content{},
		vars:           vars,
		SystemLanguage: systemLanguage,
	}
	if d != nil {
		l.languages = d.Languages
		l.index(d.List)
	}
	return l
}

func (l *Local) index(entries []Entry) {
	for _, e := range entries {
		if e.Children != nil {
			l.index(e.Children)
			continue
		}
		compiled := make(map[string]content, len(e.Contents))
		for lang, s := range e.Contents {
			compiled[lang] = compile(s)
		}
		l.texts[e.ID] = compiled
	}
}

func (l *Local) SetTypesetter(t Typesetter) { l.typeset = t }

// OnChange registers fn to run after the active language changes.
func (l *Local) OnChange(fn func(active string)) { l.listeners = append(l.listeners, fn) }

// Language is the selected language, possibly "auto".
func (l *Local) Language() string { return l.language }

// Active is the language pack texts are read from.
func (l *Local) Active() string { return l.active }

func (l *Local) Languages() []Language { return l.languages }

// SetLanguage selects a language by name. "auto" picks the configured
// language closest to the system locale. Unknown names fall back to the
// first configured language.
func (l *Local) SetLanguage(name string) {
	if l.language == name {
		return
	}
	active := name
	if active == "auto" {
		active = l.match(l.SystemLanguage())
	}
	settings := Language{Name: active, Scale: 1}
	if i := slices.IndexFunc(l.languages, func(lang Language) bool { return lang.Name == active }); i != -1 {
		settings = l.languages[i]
	} else if len(l.languages) != 0 {
		settings = l.languages[0]
	}
	l.active = settings.Name
	l.language = name
	logger.Debug("language changed", "language", name, "active", l.active)
	if l.typeset != nil {
		scale := settings.Scale
		if scale <= 0 {
			scale = 1
		}
		l.typeset.SetLanguageFont(settings.Font)
		l.typeset.SetSizeScale(scale)
		l.typeset.SetBreakWords(slices.Contains(breakLanguages, l.active))
	}
	for _, fn := range l.listeners {
		fn(l.active)
	}
}

// match returns the configured language that best serves the locale.
func (l *Local) match(locale string) string {
	if len(l.languages) == 0 {
		return locale
	}
	if r, ok := remap[locale]; ok {
		locale = r
	}
	user, err := language.Parse(locale)
	if err != nil {
		return l.languages[0].Name
	}
	var (
		tags  []language.Tag
		names []string
	)
	for _, lang := range l.languages {
		t, err := language.Parse(lang.Name)
		if err != nil {
			continue
		}
		tags = append(tags, t)
		names = append(names, lang.Name)
	}
	if len(tags) == 0 {
		return l.languages[0].Name
	}
	_, i, conf := language.NewMatcher(tags).Match(user)
	if conf == language.No {
		return l.languages[0].Name
	}
	return names[i]
}

// Get returns the text for id in the active language.
func (l *Local) Get(id string) (string, bool) {
	c, ok := l.texts[id][l.active]
	if !ok {
		return "", false
	}
	return c.render(l.vars), true
}

// Replace substitutes every <ref:id> tag with its localized text. Unknown
// ids are left as written.
func (l *Local) Replace(text string) string {
	if !strings.Contains(text, "<ref:") {
		return text
	}
	return refPattern.ReplaceAllStringFunc(text, func(tag string) string {
		id := refPattern.FindStringSubmatch(tag)[1]
		if s, ok := l.Get(id); ok {
			return s
		}
		return tag
	})
}

// systemLanguage reads the POSIX locale, e.g. "zh_HK.UTF-8" becomes "zh-HK".
func systemLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i != -1 {
			v = v[:i]
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return "en-US"
}
