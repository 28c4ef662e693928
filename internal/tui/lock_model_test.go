package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/entitlement"
	"github.com/akyairhashvil/payg-unlock/internal/unlock"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type stubManager struct {
	result     error
	lockoutEnd time.Time
	remaining  time.Duration
	calls      int
}

func (s *stubManager) Initialized() bool { return true }
func (s *stubManager) Enabled() bool     { return true }
func (s *stubManager) ValidateFormat(code string) bool {
	return entitlement.ValidateFormat(code)
}
func (s *stubManager) Verify(ctx context.Context, code string) error {
	s.calls++
	return s.result
}
func (s *stubManager) LockoutEndTime() time.Time                   { return s.lockoutEnd }
func (s *stubManager) TimeRemaining() time.Duration                { return s.remaining }
func (s *stubManager) Subscribe(fn func(entitlement.Event)) func() { return func() {} }

func newSizedLockModel(t *testing.T, mgr unlock.Manager) LockModel {
	t.Helper()
	m := NewLockModel(mgr, zap.NewNop(), time.Second)
	t.Cleanup(m.loop.Close)
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return model.(LockModel)
}

func typeCode(t *testing.T, m LockModel, code string) LockModel {
	t.Helper()
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(code)})
	return model.(LockModel)
}

// submit presses enter and feeds back the verification result.
func submit(t *testing.T, m LockModel) LockModel {
	t.Helper()
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(LockModel)
	if !m.spinning {
		t.Fatalf("expected spinner while verifying")
	}
	for _, msg := range collectMsgs(t, cmd) {
		if _, ok := msg.(workDoneMsg); ok {
			model, _ = m.Update(msg)
			m = model.(LockModel)
		}
	}
	return m
}

func TestLockModelUnlocks(t *testing.T) {
	mgr := &stubManager{remaining: 24 * time.Hour}
	m := newSizedLockModel(t, mgr)

	m = typeCode(t, m, "12345678")
	if m.ctrl.Code() != "12345678" {
		t.Fatalf("expected code to reach controller, got %q", m.ctrl.Code())
	}
	m = submit(t, m)

	if mgr.calls != 1 {
		t.Fatalf("expected one verify call, got %d", mgr.calls)
	}
	if !m.Unlocked() || m.spinning {
		t.Fatalf("expected unlocked without spinner")
	}
	view := m.View()
	if !strings.Contains(view, "Unlocked") || !strings.Contains(view, "Credit remaining: 24h") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	model, cmd := m.Update(successExitMsg{})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit after success delay")
	}
	if model.(LockModel).ctrl.InputEnabled() {
		t.Fatalf("expected session destroyed on exit")
	}
}

func TestLockModelShowsFailure(t *testing.T) {
	mgr := &stubManager{result: entitlement.ErrInvalidCode}
	m := newSizedLockModel(t, mgr)

	m = typeCode(t, m, "12345678")
	m = submit(t, m)
	if m.Unlocked() {
		t.Fatalf("expected still locked")
	}
	if !strings.Contains(m.View(), unlock.MessageInvalidCode) {
		t.Fatalf("expected failure message in view:\n%s", m.View())
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(LockModel)
	if m.input.Value() != "" || strings.Contains(m.View(), unlock.MessageInvalidCode) {
		t.Fatalf("expected reset to clear input and message")
	}
}

func TestLockModelLockout(t *testing.T) {
	mgr := &stubManager{result: entitlement.ErrTooManyAttempts}
	mgr.lockoutEnd = time.Now().Add(125 * time.Second)
	m := newSizedLockModel(t, mgr)

	m = typeCode(t, m, "12345678")
	m = submit(t, m)
	if !strings.Contains(m.View(), "Try again in 3 minutes") {
		t.Fatalf("expected lockout message in view:\n%s", m.View())
	}
	if m.input.Focused() {
		t.Fatalf("expected input blurred during lockout")
	}

	m = typeCode(t, m, "9")
	if m.ctrl.Code() != "12345678" {
		t.Fatalf("expected typing to be ignored during lockout")
	}
}

func TestLockModelEscResets(t *testing.T) {
	tests := []struct {
		name       string
		result     error
		wantStatus unlock.Status
		wantMsg    string
	}{
		{"failed", entitlement.ErrInvalidCode, unlock.StatusFailed, unlock.MessageInvalidCode},
		{"locked out", entitlement.ErrTooManyAttempts, unlock.StatusTooManyAttempts, "Try again in 3 minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := &stubManager{result: tt.result, lockoutEnd: time.Now().Add(125 * time.Second)}
			m := newSizedLockModel(t, mgr)

			m = typeCode(t, m, "12345678")
			m = submit(t, m)
			if m.ctrl.Status() != tt.wantStatus {
				t.Fatalf("expected %s, got %s", tt.wantStatus, m.ctrl.Status())
			}
			if !strings.Contains(m.View(), tt.wantMsg) {
				t.Fatalf("expected %q in view:\n%s", tt.wantMsg, m.View())
			}
			var timerIDs []uint64
			for id := range m.loop.timers {
				timerIDs = append(timerIDs, id)
			}

			model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
			m = model.(LockModel)
			if m.ctrl.Status() != unlock.StatusNotVerifying {
				t.Fatalf("expected not-verifying after esc, got %s", m.ctrl.Status())
			}
			if m.ctrl.Message() != "" || strings.Contains(m.View(), tt.wantMsg) {
				t.Fatalf("expected message cleared, got %q", m.ctrl.Message())
			}
			if !m.ctrl.InputEnabled() || !m.input.Focused() {
				t.Fatalf("expected input re-enabled and focused after esc")
			}
			if m.input.Value() != "" {
				t.Fatalf("expected input cleared, got %q", m.input.Value())
			}
			for _, id := range timerIDs {
				if !m.loop.timers[id].stopped {
					t.Fatalf("expected lockout timer %d stopped by esc", id)
				}
				model, _ = m.Update(timerFiredMsg{id: id})
				m = model.(LockModel)
			}
			if m.ctrl.Status() != unlock.StatusNotVerifying || m.ctrl.Message() != "" {
				t.Fatalf("stale timer changed state: %s %q", m.ctrl.Status(), m.ctrl.Message())
			}

			m = typeCode(t, m, "87654321")
			if m.ctrl.Code() != "87654321" {
				t.Fatalf("expected typing accepted after esc, got %q", m.ctrl.Code())
			}
		})
	}
}

func TestLockModelRejectsShortCode(t *testing.T) {
	mgr := &stubManager{}
	m := newSizedLockModel(t, mgr)

	m = typeCode(t, m, "1234567")
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(LockModel)
	if m.spinning || mgr.calls != 0 {
		t.Fatalf("expected short code not to be submitted")
	}
}

func TestLockModelCtrlCQuits(t *testing.T) {
	m := newSizedLockModel(t, &stubManager{})
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit command")
	}
	if model.(LockModel).ctrl.InputEnabled() {
		t.Fatalf("expected session destroyed")
	}
}

func TestLockBoxWidth(t *testing.T) {
	if got := lockBoxWidth(200); got != 52 {
		t.Fatalf("expected preferred width, got %d", got)
	}
	if got := lockBoxWidth(40); got != 36 {
		t.Fatalf("expected narrowed width, got %d", got)
	}
	if got := lockBoxWidth(10); got != 24 {
		t.Fatalf("expected minimum width, got %d", got)
	}
}

func TestFormatCredit(t *testing.T) {
	tests := map[time.Duration]string{
		0:                "No credit remaining",
		-time.Minute:     "No credit remaining",
		45 * time.Second: "Credit remaining: 45s",
		90 * time.Minute: "Credit remaining: 1h 30m",
		72 * time.Hour:   "Credit remaining: 3d",
		50 * time.Hour:   "Credit remaining: 2d 2h",
	}
	for d, want := range tests {
		if got := FormatCredit(d); got != want {
			t.Fatalf("FormatCredit(%s) = %q, want %q", d, got, want)
		}
	}
}
