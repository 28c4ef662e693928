package tui

import (
	"sync"
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/config"
	"github.com/akyairhashvil/payg-unlock/internal/unlock"
	tea "github.com/charmbracelet/bubbletea"
)

// Loop adapts the bubbletea program to unlock.Loop. Background work and
// timers become commands collected by Drain; their results come back as
// messages that Handle runs inside Update. Post is the only method that may
// be called off the loop.
type Loop struct {
	posts     chan func()
	done      chan struct{}
	closeOnce sync.Once

	pending []tea.Cmd
	timers  map[uint64]*loopTimer
	nextID  uint64
	now     func() time.Time
}

type workDoneMsg struct {
	err  error
	done func(error)
}

type postedMsg struct{ fn func() }

type timerFiredMsg struct{ id uint64 }

type loopTimer struct {
	fn      func()
	stopped bool
	fired   bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func NewLoop() *Loop {
	return &Loop{
		posts:  make(chan func(), config.PostBuffer),
		done:   make(chan struct{}),
		timers: make(map[uint64]*loopTimer),
		now:    time.Now,
	}
}

func (l *Loop) Go(work func() error, done func(error)) {
	l.pending = append(l.pending, func() tea.Msg {
		return workDoneMsg{err: work(), done: done}
	})
}

func (l *Loop) Post(fn func()) {
	select {
	case l.posts <- fn:
	case <-l.done:
	}
}

func (l *Loop) AfterFunc(d time.Duration, fn func()) unlock.Timer {
	l.nextID++
	id := l.nextID
	t := &loopTimer{fn: fn}
	l.timers[id] = t
	l.pending = append(l.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return t
}

func (l *Loop) Now() time.Time { return l.now() }

// Listen waits for the next posted callback. Handle re-arms it after each
// delivery.
func (l *Loop) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-l.posts:
			return postedMsg{fn: fn}
		case <-l.done:
			return nil
		}
	}
}

// Handle runs msg if it belongs to the loop and reports whether it did.
func (l *Loop) Handle(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case workDoneMsg:
		msg.done(msg.err)
		return nil, true
	case postedMsg:
		msg.fn()
		return l.Listen(), true
	case timerFiredMsg:
		t, ok := l.timers[msg.id]
		delete(l.timers, msg.id)
		if ok && !t.stopped && !t.fired {
			t.fired = true
			t.fn()
		}
		return nil, true
	}
	return nil, false
}

// Drain returns the commands scheduled since the last call.
func (l *Loop) Drain() tea.Cmd {
	if len(l.pending) == 0 {
		return nil
	}
	cmds := l.pending
	l.pending = nil
	return tea.Batch(cmds...)
}

// Close releases goroutines blocked in Post or Listen.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}
