package script

import (
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/ui"
)

// elementAPI is the view of an element scripts see. Method names reach JS
// with a lowercase first letter.
type elementAPI struct {
	e ui.Element
}

func wrap(e ui.Element) *elementAPI {
	if e == nil {
		return nil
	}
	return &elementAPI{e: e}
}

func (a *elementAPI) Name() string     { return a.e.Node().Name() }
func (a *elementAPI) PresetID() string { return a.e.Node().PresetID() }
func (a *elementAPI) Kind() string     { return a.e.Node().Kind().String() }
func (a *elementAPI) Visible() bool    { return a.e.Node().Visible() }
func (a *elementAPI) X() float64       { return a.e.Node().X() }
func (a *elementAPI) Y() float64       { return a.e.Node().Y() }
func (a *elementAPI) Width() float64   { return a.e.Node().Width() }
func (a *elementAPI) Height() float64  { return a.e.Node().Height() }
func (a *elementAPI) Show()            { a.e.Node().Show() }
func (a *elementAPI) Hide()            { a.e.Node().Hide() }
func (a *elementAPI) Destroy()         { a.e.Destroy() }

func (a *elementAPI) Set(props map[string]float64) { a.e.Node().Set(ui.Props(props)) }

func (a *elementAPI) Move(props map[string]float64, easing string, duration float64) {
	a.e.Node().Move(ui.Props(props), easing, duration)
}

func (a *elementAPI) Attr(key string) any {
	v, _ := a.e.Node().Attr(key)
	return v
}

func (a *elementAPI) SetAttr(key string, v any) { a.e.Node().SetAttr(key, v) }

func (a *elementAPI) Parent() *elementAPI { return wrap(a.e.Node().Parent()) }

// Get finds another live element of the same manager.
func (a *elementAPI) Get(key string) *elementAPI { return wrap(a.e.Node().Manager().Get(key)) }

func (a *elementAPI) Focus()   { a.e.Node().Manager().AddFocus(a.e) }
func (a *elementAPI) Unfocus() { a.e.Node().Manager().RemoveFocus(a.e) }

func (a *elementAPI) Emit(typ string) { a.e.Emit(typ, core.EventSignal{Source: a.e}, false) }
