// Package unlock implements the time-boxed unlock-code verification
// controller behind the pay-as-you-go lock screen.
//
// A Controller is one session of the unlock dialog. It submits codes to the
// entitlement manager, classifies failures, enforces the local cooldown after
// a TooManyAttempts result and exposes a View for the widget layer. All of
// its methods, and every callback it schedules, run on a single Loop.
package unlock

import (
	"context"
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/config"
	"github.com/akyairhashvil/payg-unlock/internal/entitlement"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Config struct {
	Logger *zap.Logger
	// VerifyTimeout bounds one Manager.Verify call. Defaults to
	// config.VerifyTimeout.
	VerifyTimeout time.Duration
	Observer      Observer
}

type Controller struct {
	manager  Manager
	loop     Loop
	log      *zap.Logger
	observer Observer
	timeout  time.Duration
	id       string

	status    Status
	code      string
	message   string
	ready     bool
	remaining time.Duration

	// cancelled is set by Destroy; nothing may transition afterwards.
	cancelled bool
	// generation is bumped by every submit and reset. Completions and timer
	// callbacks carry the value they were created under and are dropped when
	// it no longer matches.
	generation   uint64
	cancelVerify context.CancelFunc

	lockout    Timer
	lockoutEnd time.Time

	unsubscribe func()
}

// New opens a session. UI state stays disabled until the manager reports
// it is initialized.
func New(manager Manager, loop Loop, cfg Config) *Controller {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.VerifyTimeout
	if timeout <= 0 {
		timeout = config.VerifyTimeout
	}
	id := uuid.NewString()
	c := &Controller{
		manager:  manager,
		loop:     loop,
		log:      log.Named("unlock").With(zap.String("session", id)),
		observer: cfg.Observer,
		timeout:  timeout,
		id:       id,
		status:   StatusNotVerifying,
	}
	// Subscribe before reading Initialized so the notification cannot slip
	// between the two.
	c.unsubscribe = manager.Subscribe(func(ev entitlement.Event) {
		loop.Post(func() { c.handleEvent(ev) })
	})
	if manager.Initialized() {
		c.ready = true
		c.remaining = manager.TimeRemaining()
	}
	return c
}

func (c *Controller) ID() string { return c.id }

func (c *Controller) Status() Status { return c.status }

func (c *Controller) Message() string { return c.message }

func (c *Controller) Code() string { return c.code }

// LockoutEndTime is the manager's deadline captured when the current
// lockout started.
func (c *Controller) LockoutEndTime() time.Time { return c.lockoutEnd }

func (c *Controller) InputEnabled() bool {
	return c.ready && !c.cancelled && c.status.accepting()
}

func (c *Controller) SubmitEnabled() bool {
	return c.InputEnabled() && c.manager.ValidateFormat(c.code)
}

func (c *Controller) View() View {
	return c.viewWith(SpinnerNone)
}

func (c *Controller) viewWith(spinner SpinnerDirective) View {
	return View{
		Status:        c.status,
		Message:       c.message,
		InputEnabled:  c.InputEnabled(),
		SubmitEnabled: c.SubmitEnabled(),
		Spinner:       spinner,
		Ready:         c.ready,
		Enabled:       c.manager.Enabled(),
		TimeRemaining: c.remaining,
	}
}

// SetCode is the input-change callback. Edits are ignored while input is
// disabled.
func (c *Controller) SetCode(code string) {
	if !c.InputEnabled() || code == c.code {
		return
	}
	c.code = code
	c.emit(SpinnerNone)
}

// Submit starts verifying the current code and reports whether it did.
// Malformed codes are rejected here and never reach the manager.
func (c *Controller) Submit() bool {
	if !c.InputEnabled() {
		return false
	}
	if !c.manager.ValidateFormat(c.code) {
		c.log.Debug("submit rejected by local format check")
		return false
	}

	c.stopLockoutTimer()
	c.generation++
	gen := c.generation
	c.status = StatusVerifying
	c.message = ""

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	c.cancelVerify = cancel
	code := c.code
	manager := c.manager
	c.log.Debug("verifying code", zap.Uint64("generation", gen))
	c.emit(SpinnerStart)

	c.loop.Go(func() error {
		return manager.Verify(ctx, code)
	}, func(err error) {
		cancel()
		c.finishVerify(gen, err)
	})
	return true
}

func (c *Controller) finishVerify(gen uint64, err error) {
	if c.cancelled || gen != c.generation || c.status != StatusVerifying {
		c.log.Debug("discarding stale verification result", zap.Uint64("generation", gen))
		return
	}
	c.cancelVerify = nil

	if err == nil {
		c.status = StatusSucceeded
		c.message = ""
		c.remaining = c.manager.TimeRemaining()
		c.log.Info("code accepted")
		c.emit(SpinnerStop)
		if c.observer != nil {
			c.observer.Succeeded()
		}
		return
	}

	kind := Classify(err)
	c.log.Info("verification failed", zap.Stringer("kind", kind), zap.Error(err))
	if kind == VerifyErrorTooManyAttempts {
		c.enterLockout()
	} else {
		c.status = StatusFailed
		c.message = failureMessage(kind)
	}
	c.emit(SpinnerStop)
}

func (c *Controller) enterLockout() {
	c.lockoutEnd = c.manager.LockoutEndTime()
	secondsLeft := secondsUntil(c.lockoutEnd, c.loop.Now())
	c.status = StatusTooManyAttempts
	c.message = FormatLockoutMessage(secondsLeft)

	delay := LockoutDelay(secondsLeft)
	c.stopLockoutTimer()
	gen := c.generation
	c.lockout = c.loop.AfterFunc(delay, func() { c.lockoutExpired(gen) })
	c.log.Info("locked out", zap.Int64("seconds_left", secondsLeft), zap.Duration("delay", delay))
}

// lockoutExpired clears the local cooldown. It does not consult the manager;
// if the manager still disagrees the next submit gets a fresh lockout.
func (c *Controller) lockoutExpired(gen uint64) {
	if c.cancelled || gen != c.generation || c.status != StatusTooManyAttempts {
		return
	}
	c.lockout = nil
	c.status = StatusNotVerifying
	c.message = ""
	c.log.Debug("lockout expired")
	c.emit(SpinnerNone)
}

func (c *Controller) stopLockoutTimer() {
	if c.lockout != nil {
		c.lockout.Stop()
		c.lockout = nil
	}
}

// Reset returns a failed or locked-out session to NotVerifying and clears
// the entered code. Succeeded is terminal and a pending verification is left
// to finish, so both ignore Reset.
func (c *Controller) Reset() {
	if c.cancelled {
		return
	}
	switch c.status {
	case StatusSucceeded, StatusVerifying:
		return
	}
	c.stopLockoutTimer()
	c.generation++
	c.status = StatusNotVerifying
	c.message = ""
	c.code = ""
	c.emit(SpinnerNone)
}

// Destroy tears the session down. It is synchronous and idempotent: the
// recovery timer is cancelled, an in-flight verification is abandoned and
// its result discarded, and no observer call happens afterwards.
func (c *Controller) Destroy() {
	if c.cancelled {
		return
	}
	c.cancelled = true
	c.stopLockoutTimer()
	if c.cancelVerify != nil {
		c.cancelVerify()
		c.cancelVerify = nil
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.observer = nil
	c.log.Debug("session destroyed", zap.Stringer("status", c.status))
}

func (c *Controller) handleEvent(ev entitlement.Event) {
	if c.cancelled {
		return
	}
	switch ev {
	case entitlement.EventInitialized:
		if c.ready {
			return
		}
		c.ready = true
	case entitlement.EventExpiryTimeChanged:
	default:
		return
	}
	c.remaining = c.manager.TimeRemaining()
	c.emit(SpinnerNone)
}

func (c *Controller) emit(spinner SpinnerDirective) {
	if c.cancelled || c.observer == nil {
		return
	}
	c.observer.Changed(c.viewWith(spinner))
}
