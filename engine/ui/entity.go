package ui

import "github.com/hubastard/groveui/engine/core"

// EntityManager indexes live elements by entity id, preset id, name and
// reference id. When ids collide the most recent element wins.
type EntityManager struct {
	byEntity    map[string]Element
	byPreset    map[string]Element
	byName      map[string]Element
	byReference map[string]Element
}

func NewEntityManager() *EntityManager {
	return &EntityManager{
		byEntity:    map[string]Element{},
		byPreset:    map[string]Element{},
		byName:      map[string]Element{},
		byReference: map[string]Element{},
	}
}

// Get looks key up as an entity id, preset id, name, then reference id.
func (em *EntityManager) Get(key string) Element {
	if e, ok := em.byEntity[key]; ok {
		return e
	}
	if e, ok := em.byPreset[key]; ok {
		return e
	}
	if e, ok := em.byName[key]; ok {
		return e
	}
	return em.byReference[key]
}

func (em *EntityManager) Add(e Element) {
	n := e.Node()
	em.byEntity[n.entityID] = e
	if n.presetID != "" {
		em.byPreset[n.presetID] = e
	}
	if n.name != "" {
		em.byName[n.name] = e
	}
	if n.referenceID != "" {
		em.byReference[n.referenceID] = e
	}
}

func (em *EntityManager) Remove(e Element) {
	n := e.Node()
	dropIf(em.byEntity, n.entityID, e)
	dropIf(em.byPreset, n.presetID, e)
	dropIf(em.byName, n.name, e)
	dropIf(em.byReference, n.referenceID, e)
}

func (em *EntityManager) Len() int { return len(em.byEntity) }

func dropIf(m map[string]Element, key string, e Element) {
	if cur, ok := m[key]; ok && cur == e {
		delete(m, key)
	}
}

// ElementManager schedules per-frame updates of connected elements and the
// one-time autorun event of newly connected ones.
type ElementManager struct {
	list     []Element
	pending  []Element
	deferred *core.Deferred
}

func NewElementManager(d *core.Deferred) *ElementManager {
	return &ElementManager{deferred: d}
}

// Append registers a connecting element. The first connection queues its
// autorun event.
func (em *ElementManager) Append(e Element) {
	if n := e.Node(); !n.started {
		n.started = true
		em.pending = append(em.pending, e)
	}
	em.list = append(em.list, e)
}

// Remove unregisters e once the deferred queue drains.
func (em *ElementManager) Remove(e Element) {
	em.deferred.Push(func() {
		for i, it := range em.list {
			if it == e {
				em.list = append(em.list[:i], em.list[i+1:]...)
				return
			}
		}
	})
}

func (em *ElementManager) Len() int { return len(em.list) }

func (em *ElementManager) autorun() {
	queue := em.pending
	em.pending = nil
	for _, e := range queue {
		e.Emit("autorun", core.EventSignal{Source: e}, false)
	}
}

// Update runs autorun events, then the updaters of the elements registered
// before this call. Elements appended during the pass wait for the next one.
func (em *ElementManager) Update(dt float64) {
	em.autorun()
	count := len(em.list)
	for i := 0; i < count && i < len(em.list); i++ {
		if n := em.list[i].Node(); n.connected {
			n.updaters.Update(dt)
		}
	}
	for len(em.pending) != 0 {
		em.autorun()
	}
}
