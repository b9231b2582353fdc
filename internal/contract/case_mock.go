package contract

import (
	"context"

	"github.com/rotorpost/rotorpost/schema"
	"github.com/stretchr/testify/mock"
)

// MockCaseStore is a mock type for the CaseStore type.
type MockCaseStore struct {
	mock.Mock
}

var _ CaseStore = &MockCaseStore{} // Compile-time check

// Resolve implements the CaseStore interface.
func (m *MockCaseStore) Resolve(ctx context.Context, root string) (string, error) {
	ret := m.Called(ctx, root)
	resolved, _ := ret.Get(0).(string)
	return resolved, ret.Error(1)
}

// ListTimeDirs implements the CaseStore interface.
func (m *MockCaseStore) ListTimeDirs(ctx context.Context, root string) ([]schema.TimeDir, error) {
	ret := m.Called(ctx, root)
	dirs, _ := ret.Get(0).([]schema.TimeDir)
	return dirs, ret.Error(1)
}

// ListKeys implements the CaseStore interface.
func (m *MockCaseStore) ListKeys(ctx context.Context, root string) ([]string, error) {
	ret := m.Called(ctx, root)
	keys, _ := ret.Get(0).([]string)
	return keys, ret.Error(1)
}

// ReadOutput implements the CaseStore interface.
func (m *MockCaseStore) ReadOutput(ctx context.Context, root string, key string) (*schema.RawOutput, error) {
	ret := m.Called(ctx, root, key)
	raw, _ := ret.Get(0).(*schema.RawOutput)
	return raw, ret.Error(1)
}
