// Package backendmock provides a hand-written go.uber.org/mock-style mock
// of moa.Backend for driver tests, following the controller/recorder shape
// mockgen emits and ide-client_test.go exercises
// (gomock.NewController(t), mockConn.EXPECT().Method(...).Return(...)).
package backendmock

import (
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/moa-lang/moa/ast"
)

// Backend is a mock of the moa.Backend interface.
type Backend struct {
	ctrl     *gomock.Controller
	recorder *BackendMockRecorder
}

// BackendMockRecorder is the mock recorder for Backend.
type BackendMockRecorder struct {
	mock *Backend
}

// New creates a new mock Backend.
func New(ctrl *gomock.Controller) *Backend {
	mock := &Backend{ctrl: ctrl}
	mock.recorder = &BackendMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *Backend) EXPECT() *BackendMockRecorder {
	return m.recorder
}

// Name mocks base method.
func (m *Backend) Name() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Name")
	ret0, _ := ret[0].(string)
	return ret0
}

// Name indicates an expected call of Name.
func (mr *BackendMockRecorder) Name() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Name", reflect.TypeOf((*Backend)(nil).Name))
}

// Emit mocks base method.
func (m *Backend) Emit(ctx ast.Context) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Emit", ctx)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Emit indicates an expected call of Emit.
func (mr *BackendMockRecorder) Emit(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Emit", reflect.TypeOf((*Backend)(nil).Emit), ctx)
}
