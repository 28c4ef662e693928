package unlock

import (
	"context"
	"testing"
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/entitlement"
)

type pendingWork struct {
	work func() error
	done func(error)
}

// fakeLoop runs everything on the test goroutine. Background work and posts
// queue until the test drains them, and timers fire only on Advance.
type fakeLoop struct {
	now     time.Time
	pending []pendingWork
	posts   []func()
	timers  []*fakeTimer
}

func newFakeLoop() *fakeLoop {
	return &fakeLoop{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (l *fakeLoop) Go(work func() error, done func(error)) {
	l.pending = append(l.pending, pendingWork{work: work, done: done})
}

func (l *fakeLoop) Post(fn func()) { l.posts = append(l.posts, fn) }

func (l *fakeLoop) AfterFunc(d time.Duration, fn func()) Timer {
	ft := &fakeTimer{at: l.now.Add(d), delay: d, fn: fn}
	l.timers = append(l.timers, ft)
	return ft
}

func (l *fakeLoop) Now() time.Time { return l.now }

func (l *fakeLoop) completeNext(t *testing.T) {
	t.Helper()
	if len(l.pending) == 0 {
		t.Fatalf("no pending work")
	}
	p := l.pending[0]
	l.pending = l.pending[1:]
	p.done(p.work())
}

func (l *fakeLoop) runPosts() {
	for len(l.posts) > 0 {
		fn := l.posts[0]
		l.posts = l.posts[1:]
		fn()
	}
}

func (l *fakeLoop) Advance(d time.Duration) {
	l.now = l.now.Add(d)
	for _, ft := range l.timers {
		if !ft.stopped && !ft.fired && !ft.at.After(l.now) {
			ft.fired = true
			ft.fn()
		}
	}
}

func (l *fakeLoop) liveTimers() []*fakeTimer {
	var live []*fakeTimer
	for _, ft := range l.timers {
		if !ft.stopped && !ft.fired {
			live = append(live, ft)
		}
	}
	return live
}

type fakeTimer struct {
	at      time.Time
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (ft *fakeTimer) Stop() bool {
	if ft.stopped || ft.fired {
		return false
	}
	ft.stopped = true
	return true
}

// refire invokes the callback again regardless of state, as a late
// duplicate delivery would.
func (ft *fakeTimer) refire() { ft.fn() }

type fakeManager struct {
	initialized bool
	enabled     bool
	results     []error
	calls       []string
	ctxErrs     []error
	deadlines   []time.Time
	lockoutEnd  time.Time
	remaining   time.Duration

	subs         map[int]func(entitlement.Event)
	nextSub      int
	unsubscribed int
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		initialized: true,
		enabled:     true,
		subs:        make(map[int]func(entitlement.Event)),
	}
}

func (m *fakeManager) Initialized() bool { return m.initialized }
func (m *fakeManager) Enabled() bool     { return m.enabled }

func (m *fakeManager) ValidateFormat(code string) bool {
	return entitlement.ValidateFormat(code)
}

func (m *fakeManager) Verify(ctx context.Context, code string) error {
	m.calls = append(m.calls, code)
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	deadline, _ := ctx.Deadline()
	m.deadlines = append(m.deadlines, deadline)
	if len(m.results) == 0 {
		return nil
	}
	err := m.results[0]
	m.results = m.results[1:]
	return err
}

func (m *fakeManager) LockoutEndTime() time.Time    { return m.lockoutEnd }
func (m *fakeManager) TimeRemaining() time.Duration { return m.remaining }

func (m *fakeManager) Subscribe(fn func(entitlement.Event)) func() {
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		delete(m.subs, id)
		m.unsubscribed++
	}
}

func (m *fakeManager) fire(ev entitlement.Event) {
	for _, fn := range m.subs {
		fn(ev)
	}
}

type recorder struct {
	views     []View
	succeeded int
}

func (r *recorder) Changed(v View) { r.views = append(r.views, v) }
func (r *recorder) Succeeded()     { r.succeeded++ }

func (r *recorder) spinnerDirectives() []SpinnerDirective {
	var out []SpinnerDirective
	for _, v := range r.views {
		if v.Spinner != SpinnerNone {
			out = append(out, v.Spinner)
		}
	}
	return out
}

func (r *recorder) last(t *testing.T) View {
	t.Helper()
	if len(r.views) == 0 {
		t.Fatalf("observer saw no views")
	}
	return r.views[len(r.views)-1]
}

func newTestController(t *testing.T, m Manager) (*Controller, *fakeLoop, *recorder) {
	t.Helper()
	loop := newFakeLoop()
	rec := &recorder{}
	c := New(m, loop, Config{Observer: rec, VerifyTimeout: 5 * time.Second})
	t.Cleanup(c.Destroy)
	return c, loop, rec
}
