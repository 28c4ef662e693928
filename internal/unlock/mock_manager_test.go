// MockManager follows the mockgen layout for Manager; running go generate on
// manager.go replaces this file with equivalent generated output.

package unlock

import (
	context "context"
	reflect "reflect"
	time "time"

	entitlement "github.com/akyairhashvil/payg-unlock/internal/entitlement"
	gomock "github.com/golang/mock/gomock"
)

var _ Manager = (*MockManager)(nil)

// MockManager is a mock of Manager interface.
type MockManager struct {
	ctrl     *gomock.Controller
	recorder *MockManagerMockRecorder
}

// MockManagerMockRecorder is the mock recorder for MockManager.
type MockManagerMockRecorder struct {
	mock *MockManager
}

// NewMockManager creates a new mock instance.
func NewMockManager(ctrl *gomock.Controller) *MockManager {
	mock := &MockManager{ctrl: ctrl}
	mock.recorder = &MockManagerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockManager) EXPECT() *MockManagerMockRecorder {
	return m.recorder
}

// Enabled mocks base method.
func (m *MockManager) Enabled() bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Enabled")
	ret0, _ := ret[0].(bool)
	return ret0
}

// Enabled indicates an expected call of Enabled.
func (mr *MockManagerMockRecorder) Enabled() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Enabled", reflect.TypeOf((*MockManager)(nil).Enabled))
}

// Initialized mocks base method.
func (m *MockManager) Initialized() bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Initialized")
	ret0, _ := ret[0].(bool)
	return ret0
}

// Initialized indicates an expected call of Initialized.
func (mr *MockManagerMockRecorder) Initialized() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Initialized", reflect.TypeOf((*MockManager)(nil).Initialized))
}

// LockoutEndTime mocks base method.
func (m *MockManager) LockoutEndTime() time.Time {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LockoutEndTime")
	ret0, _ := ret[0].(time.Time)
	return ret0
}

// LockoutEndTime indicates an expected call of LockoutEndTime.
func (mr *MockManagerMockRecorder) LockoutEndTime() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LockoutEndTime", reflect.TypeOf((*MockManager)(nil).LockoutEndTime))
}

// Subscribe mocks base method.
func (m *MockManager) Subscribe(fn func(entitlement.Event)) func() {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Subscribe", fn)
	ret0, _ := ret[0].(func())
	return ret0
}

// Subscribe indicates an expected call of Subscribe.
func (mr *MockManagerMockRecorder) Subscribe(fn interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Subscribe", reflect.TypeOf((*MockManager)(nil).Subscribe), fn)
}

// TimeRemaining mocks base method.
func (m *MockManager) TimeRemaining() time.Duration {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TimeRemaining")
	ret0, _ := ret[0].(time.Duration)
	return ret0
}

// TimeRemaining indicates an expected call of TimeRemaining.
func (mr *MockManagerMockRecorder) TimeRemaining() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TimeRemaining", reflect.TypeOf((*MockManager)(nil).TimeRemaining))
}

// ValidateFormat mocks base method.
func (m *MockManager) ValidateFormat(code string) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ValidateFormat", code)
	ret0, _ := ret[0].(bool)
	return ret0
}

// ValidateFormat indicates an expected call of ValidateFormat.
func (mr *MockManagerMockRecorder) ValidateFormat(code interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ValidateFormat", reflect.TypeOf((*MockManager)(nil).ValidateFormat), code)
}

// Verify mocks base method.
func (m *MockManager) Verify(ctx context.Context, code string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Verify", ctx, code)
	ret0, _ := ret[0].(error)
	return ret0
}

// Verify indicates an expected call of Verify.
func (mr *MockManagerMockRecorder) Verify(ctx, code interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Verify", reflect.TypeOf((*MockManager)(nil).Verify), ctx, code)
}
