//go:build profile

package profiler

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// Enabled reports whether scopes are recorded.
const Enabled = true

var errNoEvents = errors.New("profiler: no events to dump")

type event struct {
	at    int64 // unix nanoseconds
	frame int
	open  bool
}

// recorder keeps the newest events in a ring. Pushes are lock free; frame
// names are interned under a mutex.
type recorder struct {
	ready  atomic.Bool
	size   uint64
	next   atomic.Uint64
	events []event

	mu     sync.Mutex
	names  []string
	byName map[string]int
}

var rec recorder

func (r *recorder) init(capacity int) {
	r.size = uint64(capacity)
	r.events = make([]event, capacity)
	r.next.Store(0)
	r.mu.Lock()
	r.names = nil
	r.byName = map[string]int{}
	r.mu.Unlock()
	r.ready.Store(true)
}

func (r *recorder) push(e event) {
	i := r.next.Add(1) - 1
	r.events[i%r.size] = e
}

func (r *recorder) frame(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byName[name]; ok {
		return id
	}
	id := len(r.names)
	r.byName[name] = id
	r.names = append(r.names, name)
	return id
}

// snapshot returns the retained events oldest first and the frame names.
func (r *recorder) snapshot() ([]event, []string) {
	n := r.next.Load()
	start := uint64(0)
	if n > r.size {
		start = n - r.size
	}
	out := make([]event, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.events[k%r.size])
	}
	r.mu.Lock()
	names := append([]string(nil), r.names...)
	r.mu.Unlock()
	return out, names
}

// Init enables recording. capacity is the number of open and close events
// kept; older events are overwritten. Calling Init again drops the capture.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	rec.init(capacity)
}

// Start opens a scope and returns the func that closes it:
//
//	defer profiler.Start("ui.Draw")()
func Start(name string) func() {
	if !rec.ready.Load() {
		return func() {}
	}
	id := rec.frame(name)
	begin := time.Now().UnixNano()
	rec.push(event{at: begin, frame: id, open: true})
	return func() {
		rec.push(event{at: max(time.Now().UnixNano(), begin), frame: id})
	}
}

// Dump writes the capture to path.
func Dump(path string) error {
	if !rec.ready.Load() {
		return errNoEvents
	}
	doc, err := buildProfile(rec.snapshot())
	if err != nil {
		return err
	}
	return writeJSON(path, doc)
}

// OpenProfilerGraph dumps the capture to the temp directory and opens it with
// the speedscope CLI when it is installed.
func OpenProfilerGraph() (string, error) {
	path := filepath.Join(os.TempDir(), "groveui.speedscope.json")
	if err := Dump(path); err != nil {
		return "", err
	}
	cmd := exec.Command("speedscope", path)
	cmd.SysProcAttr = sysProcAttr()
	if err := cmd.Start(); err != nil {
		logger.Warn("speedscope not started", "err", err)
	}
	return path, nil
}

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // O or C
	At    int64  `json:"at"`   // microseconds since the first event
	Frame int    `json:"frame"`
}

// buildProfile turns ring events into balanced speedscope events. A close
// whose open was overwritten is dropped, and scopes still open at capture
// time are closed at the last timestamp.
func buildProfile(evs []event, names []string) (ssFile, error) {
	if len(evs) == 0 {
		return ssFile{}, errNoEvents
	}
	base := evs[0].at
	out := make([]ssEvent, 0, len(evs))
	var stack []int
	var last int64
	for _, e := range evs {
		at := max((e.at-base)/1000, last)
		if e.open {
			stack = append(stack, e.frame)
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.frame})
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.frame})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}

	frames := make([]ssFrame, len(names))
	for i, n := range names {
		frames[i] = ssFrame{Name: n}
	}
	return ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "groveui frame",
			Unit:     "microseconds",
			EndValue: last,
			Events:   out,
		}},
		Exporter: "groveui-profiler",
		Name:     "groveui capture",
	}, nil
}

// writeJSON replaces path atomically.
func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
