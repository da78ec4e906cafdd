// Package module holds the ordered, keyed module lists elements use for
// per-frame behaviors (transitions, command handlers, custom updaters).
package module

// Deferrer queues work to run after the current synchronous phase.
type Deferrer interface {
	Push(fn func())
}

// Updater is a module driven once per frame with the elapsed milliseconds.
type Updater interface {
	Update(dt float64)
}

// UpdaterFunc adapts a function to Updater. Use a pointer to it as the module
// value so it stays comparable.
type UpdaterFunc func(dt float64)

func (f *UpdaterFunc) Update(dt float64) { (*f)(dt) }

// Func wraps fn as a comparable Updater.
func Func(fn func(dt float64)) *UpdaterFunc {
	f := UpdaterFunc(fn)
	return &f
}

// List is an ordered collection where some entries are addressable by key.
// Setting an existing key replaces the module in place.
type List[T comparable] struct {
	items []T
	keys  map[string]T
}

func (l *List[T]) Len() int   { return len(l.items) }
func (l *List[T]) At(i int) T { return l.items[i] }
func (l *List[T]) Items() []T { return l.items }

func (l *List[T]) Has(key string) bool {
	_, ok := l.keys[key]
	return ok
}

// Get returns the module stored under key.
func (l *List[T]) Get(key string) (T, bool) {
	m, ok := l.keys[key]
	return m, ok
}

// Set stores m under key, replacing any module already stored there.
func (l *List[T]) Set(key string, m T) T {
	if l.keys == nil {
		l.keys = map[string]T{}
	}
	if old, ok := l.keys[key]; ok {
		if i := l.IndexOf(old); i != -1 {
			l.items[i] = m
		} else {
			l.items = append(l.items, m)
		}
		l.keys[key] = m
		return m
	}
	l.keys[key] = m
	l.items = append(l.items, m)
	return m
}

func (l *List[T]) Add(m T) T {
	l.items = append(l.items, m)
	return m
}

func (l *List[T]) IndexOf(m T) int {
	for i, it := range l.items {
		if it == m {
			return i
		}
	}
	return -1
}

func (l *List[T]) Contains(m T) bool { return l.IndexOf(m) != -1 }

// Remove drops the first occurrence of m and reports whether it was present.
func (l *List[T]) Remove(m T) bool {
	i := l.IndexOf(m)
	if i == -1 {
		return false
	}
	l.RemoveAt(i)
	return true
}

func (l *List[T]) RemoveAt(i int) {
	copy(l.items[i:], l.items[i+1:])
	var zero T
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
}

// Delete removes the module stored under key.
func (l *List[T]) Delete(key string) {
	m, ok := l.keys[key]
	if !ok {
		return
	}
	l.Remove(m)
	delete(l.keys, key)
}

// DeleteDelay removes the module stored under key once d drains, unless the
// key was rebound to another module in the meantime.
func (l *List[T]) DeleteDelay(key string, d Deferrer) {
	m, ok := l.keys[key]
	if !ok {
		return
	}
	d.Push(func() {
		if cur, ok := l.keys[key]; ok && cur == m {
			l.Remove(m)
			delete(l.keys, key)
		}
	})
}

func (l *List[T]) Reset() {
	clear(l.items)
	l.items = l.items[:0]
	clear(l.keys)
}

// UpdaterList is a List of updaters that is itself an Updater, so lists nest.
type UpdaterList struct {
	List[Updater]
}

func NewUpdaterList() *UpdaterList { return &UpdaterList{} }

// Update runs every module in order. Modules appended during the pass are
// reached in the same pass.
func (l *UpdaterList) Update(dt float64) {
	for i := 0; i < len(l.items); i++ {
		l.items[i].Update(dt)
	}
}
