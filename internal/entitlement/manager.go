// Package entitlement implements the pay-as-you-go entitlement manager: it
// owns code validation, cumulative failure counting and the authoritative
// lockout deadline, and persists them through a database.EntitlementRepository.
package entitlement

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/database"
	"github.com/akyairhashvil/payg-unlock/internal/models"
	"github.com/akyairhashvil/payg-unlock/internal/util"
	"go.uber.org/zap"
)

const auditTimeout = 2 * time.Second

// Manager is safe for concurrent use. Notifications are delivered on the
// goroutine that caused them, never while the manager's lock is held.
type Manager struct {
	repo   database.EntitlementRepository
	master string
	policy Policy
	log    *zap.Logger
	now    func() time.Time

	mu          sync.Mutex
	initialized bool
	state       models.EntitlementState
	deviceKey   string
	used        map[int64]bool
	lockoutEnd  time.Time

	subMu  sync.Mutex
	subs   map[int]func(Event)
	nextID int
}

func New(repo database.EntitlementRepository, master string, policy Policy, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		repo:   repo,
		master: master,
		policy: policy,
		log:    log.Named("entitlement"),
		now:    time.Now,
		used:   make(map[int64]bool),
		subs:   make(map[int]func(Event)),
	}
}

// Start loads persisted state in the background. The returned channel
// receives the outcome once and is then closed.
func (m *Manager) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := m.Init(ctx)
		if err != nil {
			m.log.Error("initialize entitlement state", zap.Error(err))
		}
		done <- err
	}()
	return done
}

// Init loads persisted state and fires EventInitialized. Calling it again
// after success is a no-op.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	state, err := m.repo.LoadEntitlementState(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	used, err := m.repo.UsedCounters(ctx)
	if err != nil {
		return fmt.Errorf("load used codes: %w", err)
	}
	var key string
	if m.policy.Enabled {
		key, err = util.DeriveDeviceKey(m.master, state.DeviceID)
		if err != nil {
			return fmt.Errorf("derive device key: %w", err)
		}
	}

	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return nil
	}
	now := m.now()
	m.state = state
	m.used = used
	m.deviceKey = key
	m.lockoutEnd = time.Time{}
	if remaining := state.LockoutUntil.Sub(now); !state.LockoutUntil.IsZero() && remaining > 0 {
		// now carries a monotonic reading; the persisted deadline does not.
		m.lockoutEnd = now.Add(remaining)
	}
	m.initialized = true
	m.mu.Unlock()

	m.log.Info("entitlement state loaded",
		zap.String("device_id", state.DeviceID),
		zap.Time("expires_at", state.ExpiresAt),
		zap.Int("used_codes", len(used)))
	m.notify(EventInitialized)
	return nil
}

func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

func (m *Manager) Enabled() bool { return m.policy.Enabled }

// ValidateFormat is the synchronous local syntax check.
func (m *Manager) ValidateFormat(code string) bool { return ValidateFormat(code) }

// Verify checks code, redeeming it on success. It returns nil, ErrInvalidCode,
// ErrCodeAlreadyUsed, ErrTooManyAttempts, an error wrapping ErrTimedOut, or a
// storage error.
func (m *Manager) Verify(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return timeoutErr(err)
	}

	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	now := m.now()
	if m.lockedOutLocked(now) {
		m.mu.Unlock()
		m.audit(ctx, models.OutcomeRateLimited, nil)
		return ErrTooManyAttempts
	}

	if !ValidateFormat(code) {
		err := m.failLocked(ctx, now, ErrInvalidCode)
		m.mu.Unlock()
		m.auditFailure(ctx, err, nil)
		return err
	}

	counter, match, err := matchCode(m.deviceKey, code, m.state.HighestCounter+int64(m.policy.LookAhead), m.used)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("match code: %w", err)
	}
	if err := ctx.Err(); err != nil {
		m.mu.Unlock()
		m.audit(ctx, models.OutcomeTimedOut, nil)
		return timeoutErr(err)
	}

	switch match {
	case matchUsed:
		m.mu.Unlock()
		m.audit(ctx, models.OutcomeAlreadyUsed, &counter)
		return ErrCodeAlreadyUsed
	case noMatch:
		err := m.failLocked(ctx, now, ErrInvalidCode)
		m.mu.Unlock()
		m.auditFailure(ctx, err, nil)
		return err
	}

	next := m.state
	base := next.ExpiresAt
	if base.Before(now) {
		base = now
	}
	next.ExpiresAt = base.Add(m.policy.CreditPerCode)
	next.FailedAttempts = 0
	next.Lockouts = 0
	next.LockoutUntil = time.Time{}
	if counter > next.HighestCounter {
		next.HighestCounter = counter
	}
	if err := m.repo.RedeemCode(ctx, counter, now, next); err != nil {
		if errors.Is(err, database.ErrCodeRedeemed) {
			m.used[counter] = true
			m.mu.Unlock()
			m.audit(ctx, models.OutcomeAlreadyUsed, &counter)
			return ErrCodeAlreadyUsed
		}
		m.mu.Unlock()
		err = timeoutErr(err)
		m.auditFailure(ctx, err, &counter)
		return err
	}
	m.state = next
	m.used[counter] = true
	m.lockoutEnd = time.Time{}
	m.mu.Unlock()

	m.log.Info("code accepted", zap.Int64("counter", counter), zap.Time("expires_at", next.ExpiresAt))
	m.audit(ctx, models.OutcomeAccepted, &counter)
	m.notify(EventExpiryTimeChanged)
	return nil
}

func (m *Manager) lockedOutLocked(now time.Time) bool {
	return !m.lockoutEnd.IsZero() && now.Before(m.lockoutEnd)
}

// failLocked counts one failed attempt and starts a lockout once the limit is
// reached, in which case ErrTooManyAttempts replaces cause.
func (m *Manager) failLocked(ctx context.Context, now time.Time, cause error) error {
	next := m.state
	next.FailedAttempts++
	result := cause
	var lockoutEnd time.Time
	if next.FailedAttempts >= m.policy.MaxAttempts {
		next.FailedAttempts = 0
		next.Lockouts++
		d := m.policy.LockoutDuration(next.Lockouts)
		lockoutEnd = now.Add(d)
		next.LockoutUntil = lockoutEnd
		result = ErrTooManyAttempts
		m.log.Warn("too many failed attempts",
			zap.Int("lockouts", next.Lockouts),
			zap.Duration("lockout", d))
	}
	if err := m.repo.SaveEntitlementState(ctx, next); err != nil {
		return timeoutErr(fmt.Errorf("save attempt counters: %w", err))
	}
	m.state = next
	if !lockoutEnd.IsZero() {
		m.lockoutEnd = lockoutEnd
	}
	return result
}

// LockoutEndTime is the monotonic deadline of the current lockout. It is
// meaningful only after Verify returned ErrTooManyAttempts.
func (m *Manager) LockoutEndTime() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lockoutEnd
}

// TimeRemaining is the unused credit, never negative.
func (m *Manager) TimeRemaining() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.ExpiresAt.IsZero() {
		return 0
	}
	remaining := m.state.ExpiresAt.Sub(m.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// State returns a snapshot of the persisted counters.
func (m *Manager) State() models.EntitlementState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ClearLockout ends any active lockout and forgets counted failures.
func (m *Manager) ClearLockout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return ErrNotInitialized
	}
	next := m.state
	next.FailedAttempts = 0
	next.LockoutUntil = time.Time{}
	if err := m.repo.SaveEntitlementState(ctx, next); err != nil {
		return fmt.Errorf("clear lockout: %w", err)
	}
	m.state = next
	m.lockoutEnd = time.Time{}
	m.log.Info("lockout cleared")
	return nil
}

// Subscribe registers fn for every future event. The returned func removes
// the subscription and may be called more than once.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.subMu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subMu.Lock()
			delete(m.subs, id)
			m.subMu.Unlock()
		})
	}
}

func (m *Manager) notify(ev Event) {
	m.subMu.Lock()
	fns := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (m *Manager) auditFailure(ctx context.Context, err error, counter *int64) {
	switch {
	case errors.Is(err, ErrTooManyAttempts):
		m.audit(ctx, models.OutcomeRateLimited, counter)
	case errors.Is(err, ErrInvalidCode):
		m.audit(ctx, models.OutcomeInvalid, counter)
	case errors.Is(err, ErrTimedOut):
		m.audit(ctx, models.OutcomeTimedOut, counter)
	default:
		m.audit(ctx, models.OutcomeStorageFailure, counter)
	}
}

// audit appends to the attempt trail. It outlives a cancelled verification
// context, and failures are only logged.
func (m *Manager) audit(ctx context.Context, outcome models.AttemptOutcome, counter *int64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()
	if err := m.repo.RecordAttempt(ctx, outcome, counter, m.now()); err != nil {
		m.log.Warn("record attempt", zap.String("outcome", string(outcome)), zap.Error(err))
	}
}
