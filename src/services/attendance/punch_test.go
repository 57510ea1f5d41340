package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"Backend-PunchSync/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockStore mock ของ Store สำหรับเทส punch service
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Insert(ctx context.Context, rec *models.OfflineAttendanceRecord) error {
	return m.Called(rec).Error(0)
}

func (m *MockStore) ListUnsynced(ctx context.Context) ([]models.OfflineAttendanceRecord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OfflineAttendanceRecord), args.Error(1)
}

func (m *MockStore) MarkSynced(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

func (m *MockStore) PurgeSyncedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) CountUnsynced(ctx context.Context) (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockStatusCache mock ของ StatusCache
type MockStatusCache struct {
	mock.Mock
}

func (m *MockStatusCache) GetForDate(ctx context.Context, employeeID, date string) (*models.DailyStatus, error) {
	args := m.Called(employeeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyStatus), args.Error(1)
}

func (m *MockStatusCache) RecordCheckIn(ctx context.Context, employeeID, date string, t time.Time) error {
	return m.Called(employeeID, date, t).Error(0)
}

func (m *MockStatusCache) RecordCheckOut(ctx context.Context, employeeID, date string, t time.Time) error {
	return m.Called(employeeID, date, t).Error(0)
}

func (m *MockStatusCache) IsWithinCooldown(ctx context.Context, employeeID, date string, now time.Time) (bool, error) {
	args := m.Called(employeeID, date, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockStatusCache) Touch(ctx context.Context, employeeID, date string, t time.Time) error {
	return m.Called(employeeID, date, t).Error(0)
}

func (m *MockStatusCache) PurgeBefore(ctx context.Context, dateCutoff string) (int64, error) {
	args := m.Called(dateCutoff)
	return args.Get(0).(int64), args.Error(1)
}

func validRequest(typ string) *models.PunchRequest {
	return &models.PunchRequest{
		Type:      typ,
		ScanType:  models.ScanTypeFinger,
		Lat:       13.7563,
		Long:      100.5018,
		Timestamp: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestPunchRejectsInvalidScanType(t *testing.T) {
	store := new(MockStore)
	cache := new(MockStatusCache)
	svc := NewPunchService(store, cache, time.UTC)

	req := validRequest(models.PunchTypeCheckIn)
	req.ScanType = "iris"

	rec, err := svc.Punch(context.Background(), "emp-1", req)

	assert.Nil(t, rec)
	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "ScanType", vErr.Field)
	store.AssertNotCalled(t, "Insert", mock.Anything)
}

func TestPunchRejectsMissingEmployee(t *testing.T) {
	store := new(MockStore)
	cache := new(MockStatusCache)
	svc := NewPunchService(store, cache, time.UTC)

	rec, err := svc.Punch(context.Background(), "", validRequest(models.PunchTypeCheckIn))

	assert.Nil(t, rec)
	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	store.AssertNotCalled(t, "Insert", mock.Anything)
}

func TestPunchRejectsWithinCooldown(t *testing.T) {
	store := new(MockStore)
	cache := new(MockStatusCache)
	svc := NewPunchService(store, cache, time.UTC)

	req := validRequest(models.PunchTypeCheckIn)
	cache.On("IsWithinCooldown", "emp-1", "2025-06-02", req.Timestamp).Return(true, nil)

	rec, err := svc.Punch(context.Background(), "emp-1", req)

	assert.Nil(t, rec)
	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr), "cooldown violation is a local rejection")
	store.AssertNotCalled(t, "Insert", mock.Anything, "rejected punches are never persisted")
}

func TestPunchCheckInPersistsAndUpdatesCache(t *testing.T) {
	store := new(MockStore)
	cache := new(MockStatusCache)
	svc := NewPunchService(store, cache, time.UTC)

	req := validRequest(models.PunchTypeCheckIn)
	cache.On("IsWithinCooldown", "emp-1", "2025-06-02", req.Timestamp).Return(false, nil)
	store.On("Insert", mock.Anything).Return(nil)
	cache.On("RecordCheckIn", "emp-1", "2025-06-02", req.Timestamp).Return(nil)

	rec, err := svc.Punch(context.Background(), "emp-1", req)

	assert.NoError(t, err)
	assert.NotNil(t, rec)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "emp-1", rec.EmployeeID)
	assert.Equal(t, models.PunchTypeCheckIn, rec.Type)
	assert.False(t, rec.Synced, "persisted as a durability buffer, uploaded by sync")
	store.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestPunchCheckOutUsesCheckOutPath(t *testing.T) {
	store := new(MockStore)
	cache := new(MockStatusCache)
	svc := NewPunchService(store, cache, time.UTC)

	req := validRequest(models.PunchTypeCheckOut)
	cache.On("IsWithinCooldown", "emp-1", "2025-06-02", req.Timestamp).Return(false, nil)
	store.On("Insert", mock.Anything).Return(nil)
	cache.On("RecordCheckOut", "emp-1", "2025-06-02", req.Timestamp).Return(nil)

	rec, err := svc.Punch(context.Background(), "emp-1", req)

	assert.NoError(t, err)
	assert.Equal(t, models.PunchTypeCheckOut, rec.Type)
	cache.AssertExpectations(t)
}

func TestPunchFillsZeroTimestamp(t *testing.T) {
	store := new(MockStore)
	cache := new(MockStatusCache)
	svc := NewPunchService(store, cache, time.UTC)

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	req := validRequest(models.PunchTypeCheckIn)
	req.Timestamp = time.Time{}

	cache.On("IsWithinCooldown", "emp-1", "2025-06-02", now).Return(false, nil)
	store.On("Insert", mock.Anything).Return(nil)
	cache.On("RecordCheckIn", "emp-1", "2025-06-02", now).Return(nil)

	rec, err := svc.Punch(context.Background(), "emp-1", req)

	assert.NoError(t, err)
	assert.Equal(t, now, rec.Timestamp)
}
