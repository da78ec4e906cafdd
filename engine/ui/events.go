package ui

import (
	"maps"
	"slices"

	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/easing"
	"github.com/hubastard/groveui/engine/module"
)

// Emit runs the command list bound to typ, then the attached scripts, then
// forwards to the parent while bubbling is allowed.
func (b *Base) Emit(typ string, ev core.Event, bubble bool) {
	b.callEvent(typ, ev, bubble)
	b.script.Emit(typ, ev)
	if bubble && b.m.svc.Bubbles.Get() {
		if p := b.Parent(); p != nil {
			p.Emit(typ, ev, bubble)
		}
	}
}

func (b *Base) callEvent(typ string, ev core.Event, bubble bool) {
	cmds := b.registered[typ]
	if cmds == nil {
		cmds = b.events[typ]
	}
	if cmds == nil || b.m.svc.Commands == nil {
		return
	}
	if h := b.m.svc.Commands.Run(b.self, cmds, typ, ev, bubble); h != nil {
		b.updaters.Add(&handlerModule{h: h, owner: b})
	}
}

// handlerModule drives a running command list and drops itself once the
// list has finished.
type handlerModule struct {
	h        Handler
	owner    *Base
	removing bool
}

func (hm *handlerModule) Update(dt float64) {
	if !hm.h.Finished() {
		hm.h.Update(dt)
	}
	if hm.h.Finished() && !hm.removing {
		hm.removing = true
		hm.owner.m.svc.Deferred.Push(func() { hm.owner.updaters.Remove(hm) })
	}
}

// Register overrides the design-time command list of typ.
func (b *Base) Register(typ string, cmds *Commands) {
	if old := b.registered[typ]; old != nil && old != cmds {
		b.stopEvents(old)
	}
	b.registered[typ] = cmds
}

func (b *Base) Unregister(typ string) {
	if cmds := b.registered[typ]; cmds != nil {
		delete(b.registered, typ)
		b.stopEvents(cmds)
	}
}

func (b *Base) UnregisterAll() {
	for _, typ := range slices.Sorted(maps.Keys(b.registered)) {
		b.Unregister(typ)
	}
}

// stopEvents finishes every running instance of cmds.
func (b *Base) stopEvents(cmds *Commands) {
	for _, u := range b.updaters.Items() {
		if hm, ok := u.(*handlerModule); ok && hm.h.Commands() == cmds {
			hm.h.Finish()
		}
	}
}

// Set assigns transform properties and resizes. Unknown keys are ignored.
func (b *Base) Set(props Props) {
	for k, v := range props {
		b.transform.Set(k, v)
	}
	b.self.Resize()
}

// Move tweens transform properties to props over duration milliseconds.
// Keys already tweening are taken over by the new move.
func (b *Base) Move(props Props, easingID string, duration float64) {
	var transitions *module.UpdaterList
	if u, ok := b.updaters.Get("move"); ok {
		transitions, _ = u.(*module.UpdaterList)
	}
	if transitions != nil {
		items := transitions.Items()
		for ti := len(items) - 1; ti >= 0; ti-- {
			tw, ok := items[ti].(*moveTween)
			if !ok {
				continue
			}
			for ei := len(tw.entries) - 1; ei >= 0; ei-- {
				if _, hit := props[tw.entries[ei].key]; !hit {
					continue
				}
				tw.entries = slices.Delete(tw.entries, ei, ei+1)
				if len(tw.entries) == 0 {
					transitions.RemoveAt(ti)
				}
			}
		}
	}

	if duration > 0 {
		if transitions == nil {
			transitions = module.NewUpdaterList()
			b.updaters.Set("move", transitions)
		}
		tw := &moveTween{
			b:        b,
			list:     transitions,
			ease:     b.m.svc.Easing.Get(easingID),
			duration: duration,
		}
		for _, k := range slices.Sorted(maps.Keys(props)) {
			if start, ok := b.transform.Get(k); ok {
				tw.entries = append(tw.entries, moveEntry{key: k, start: start, end: props[k]})
			}
		}
		transitions.Add(tw)
		return
	}

	for k, v := range props {
		b.transform.Set(k, v)
	}
	b.self.Resize()
	if transitions != nil && transitions.Len() == 0 {
		b.updaters.DeleteDelay("move", b.m.svc.Deferred)
	}
}

type moveEntry struct {
	key        string
	start, end float64
}

type moveTween struct {
	b        *Base
	list     *module.UpdaterList
	entries  []moveEntry
	ease     easing.Func
	elapsed  float64
	duration float64
	done     bool
}

func (t *moveTween) Update(dt float64) {
	t.elapsed += dt
	p := t.ease.Get(t.elapsed / t.duration)
	tr := &t.b.transform
	for _, e := range t.entries {
		tr.Set(e.key, e.start*(1-p)+e.end*p)
	}
	if tr.Opacity > 1 {
		tr.Opacity = 1
	}
	// One resize per frame: only the newest tween triggers it.
	if n := t.list.Len(); n > 0 && t.list.At(n-1) == module.Updater(t) {
		t.b.self.Resize()
	}
	if t.elapsed >= t.duration && !t.done {
		t.done = true
		t.b.m.svc.Deferred.Push(func() {
			t.list.Remove(t)
			if t.list.Len() == 0 {
				if cur, ok := t.b.updaters.Get("move"); ok && cur == module.Updater(t.list) {
					t.b.updaters.Delete("move")
				}
			}
		})
	}
}
