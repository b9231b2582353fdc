package archive

import (
	"time"

	"github.com/rotorpost/rotorpost/internal/contract"
	"github.com/rotorpost/rotorpost/schema"
	"github.com/stretchr/testify/mock"
)

// MockArchiveManager is a mock implementation of ArchiveManager for testing.
type MockArchiveManager struct {
	mock.Mock
}

var _ contract.ArchiveManager = &MockArchiveManager{} // Compile-time check

// GetRunStore implements the ArchiveManager interface.
func (m *MockArchiveManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, caseRoot string, command string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, caseRoot, command, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, totalSeries int) error {
	args := m.Called(runID, endTime, totalSeries)
	return args.Error(0)
}

// RecordSeriesStats implements the RunStore interface.
func (m *MockRunStore) RecordSeriesStats(runID int64, caseRoot string, stats schema.SeriesStats) error {
	args := m.Called(runID, caseRoot, stats)
	return args.Error(0)
}

// ListRuns implements the RunStore interface.
func (m *MockRunStore) ListRuns(limit int) ([]schema.RunRecord, error) {
	args := m.Called(limit)
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// ListSeriesStats implements the RunStore interface.
func (m *MockRunStore) ListSeriesStats(runID int64) ([]schema.SeriesStatsRecord, error) {
	args := m.Called(runID)
	records, _ := args.Get(0).([]schema.SeriesStatsRecord)
	return records, args.Error(1)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// GetAllSeriesStats implements the RunStore interface.
func (m *MockRunStore) GetAllSeriesStats() ([]schema.SeriesStatsRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.SeriesStatsRecord)
	return records, args.Error(1)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.ArchiveStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.ArchiveStatus), args.Error(1)
}

// Clear implements the RunStore interface.
func (m *MockRunStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
