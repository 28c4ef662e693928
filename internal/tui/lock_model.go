package tui

import (
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/config"
	"github.com/akyairhashvil/payg-unlock/internal/unlock"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// viewSink collects controller notifications between two Update calls.
type viewSink struct {
	view       unlock.View
	directives []unlock.SpinnerDirective
	succeeded  bool
}

func (s *viewSink) Changed(v unlock.View) {
	s.view = v
	if v.Spinner != unlock.SpinnerNone {
		s.directives = append(s.directives, v.Spinner)
	}
}

func (s *viewSink) Succeeded() { s.succeeded = true }

type successExitMsg struct{}

// LockModel is the bubbletea model of the unlock dialog.
type LockModel struct {
	ctrl    *unlock.Controller
	loop    *Loop
	sink    *viewSink
	input   textinput.Model
	spinner spinner.Model

	spinning bool
	exiting  bool
	unlocked bool
	width    int
	height   int
}

func NewLockModel(manager unlock.Manager, log *zap.Logger, verifyTimeout time.Duration) LockModel {
	loop := NewLoop()
	sink := &viewSink{}
	ctrl := unlock.New(manager, loop, unlock.Config{
		Logger:        log,
		VerifyTimeout: verifyTimeout,
		Observer:      sink,
	})
	sink.view = ctrl.View()

	ti := textinput.New()
	ti.Placeholder = "8-digit code"
	ti.CharLimit = config.CodeDigits
	ti.Width = config.CodeDigits + 2
	ti.Prompt = ""
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = CurrentTheme.Focused

	return LockModel{
		ctrl:    ctrl,
		loop:    loop,
		sink:    sink,
		input:   ti,
		spinner: sp,
	}
}

// Unlocked reports whether a code was accepted during the session.
func (m LockModel) Unlocked() bool { return m.unlocked }

func (m LockModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loop.Listen())
}

func (m LockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m.quit()
		case tea.KeyEnter:
			m.ctrl.Submit()
		case tea.KeyEsc:
			m.ctrl.Reset()
		default:
			if m.ctrl.InputEnabled() {
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
				m.ctrl.SetCode(m.input.Value())
			}
		}
	case spinner.TickMsg:
		if m.spinning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	case successExitMsg:
		return m.quit()
	default:
		if cmd, ok := m.loop.Handle(msg); ok {
			cmds = append(cmds, cmd)
		} else {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.sync()...)
	cmds = append(cmds, m.loop.Drain())
	return m, tea.Batch(cmds...)
}

// sync applies what the controller reported since the last Update.
func (m *LockModel) sync() []tea.Cmd {
	var cmds []tea.Cmd
	for _, d := range m.sink.directives {
		switch d {
		case unlock.SpinnerStart:
			if !m.spinning {
				m.spinning = true
				cmds = append(cmds, m.spinner.Tick)
			}
		case unlock.SpinnerStop:
			m.spinning = false
		}
	}
	m.sink.directives = nil

	if m.input.Value() != m.ctrl.Code() {
		m.input.SetValue(m.ctrl.Code())
	}
	if m.ctrl.InputEnabled() {
		if !m.input.Focused() {
			cmds = append(cmds, m.input.Focus())
		}
	} else if m.input.Focused() {
		m.input.Blur()
	}

	if m.sink.succeeded && !m.exiting {
		m.exiting = true
		m.unlocked = true
		cmds = append(cmds, tea.Tick(config.SuccessExitDelay, func(time.Time) tea.Msg {
			return successExitMsg{}
		}))
	}
	return cmds
}

func (m LockModel) quit() (tea.Model, tea.Cmd) {
	m.ctrl.Destroy()
	m.loop.Close()
	m.spinning = false
	return m, tea.Quit
}
