package attendance

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"Backend-PunchSync/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// memStore in-memory Store สำหรับเทส orchestrator โดยไม่ต้องมี MongoDB
type memStore struct {
	mu   sync.Mutex
	recs map[string]models.OfflineAttendanceRecord
}

func newMemStore() *memStore {
	return &memStore{recs: make(map[string]models.OfflineAttendanceRecord)}
}

func (s *memStore) Insert(ctx context.Context, rec *models.OfflineAttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.ID] = *rec
	return nil
}

func (s *memStore) ListUnsynced(ctx context.Context) ([]models.OfflineAttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.OfflineAttendanceRecord
	for _, r := range s.recs {
		if !r.Synced {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (s *memStore) MarkSynced(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.recs[id]; ok {
		now := time.Now()
		r.Synced = true
		r.SyncedAt = &now
		s.recs[id] = r
	}
	return nil
}

func (s *memStore) PurgeSyncedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, r := range s.recs {
		if r.Synced && r.Timestamp.Before(cutoff) {
			delete(s.recs, id)
			n++
		}
	}
	return n, nil
}

func (s *memStore) CountUnsynced(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.recs {
		if !r.Synced {
			n++
		}
	}
	return n, nil
}

// noopCache StatusCache เปล่า ๆ สำหรับเทสที่ไม่สน cache
type noopCache struct{}

func (noopCache) GetForDate(ctx context.Context, employeeID, date string) (*models.DailyStatus, error) {
	return nil, nil
}
func (noopCache) RecordCheckIn(ctx context.Context, employeeID, date string, t time.Time) error {
	return nil
}
func (noopCache) RecordCheckOut(ctx context.Context, employeeID, date string, t time.Time) error {
	return nil
}
func (noopCache) IsWithinCooldown(ctx context.Context, employeeID, date string, now time.Time) (bool, error) {
	return false, nil
}
func (noopCache) Touch(ctx context.Context, employeeID, date string, t time.Time) error { return nil }
func (noopCache) PurgeBefore(ctx context.Context, dateCutoff string) (int64, error)     { return 0, nil }

// MockRemoteAPI mock ของ collaborator ฝั่ง server
type MockRemoteAPI struct {
	mock.Mock
}

func (m *MockRemoteAPI) FetchAttendanceForDate(ctx context.Context, employeeID, date string) (*models.AttendanceResponse, error) {
	args := m.Called(employeeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendanceResponse), args.Error(1)
}

func (m *MockRemoteAPI) UploadCheckIn(ctx context.Context, rec *models.OfflineAttendanceRecord) error {
	return m.Called(rec).Error(0)
}

func (m *MockRemoteAPI) UploadCheckOut(ctx context.Context, rec *models.OfflineAttendanceRecord) error {
	return m.Called(rec).Error(0)
}

func newTestSyncer(store Store, remote RemoteAPI) *Syncer {
	return NewSyncer(store, noopCache{}, remote, NewResolver(DefaultCooldownWindow), time.UTC, 30*24*time.Hour)
}

func TestSyncAcceptUploadsAndMarksSynced(t *testing.T) {
	store := newMemStore()
	remote := new(MockRemoteAPI)
	syncer := newTestSyncer(store, remote)

	ts := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	rec := punchAt("a", models.PunchTypeCheckIn, ts)
	assert.NoError(t, store.Insert(context.Background(), &rec))

	remote.On("FetchAttendanceForDate", "emp-1", "2025-06-02").Return(nil, nil)
	remote.On("UploadCheckIn", mock.Anything).Return(nil)

	report, err := syncer.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Uploaded)

	count, _ := store.CountUnsynced(context.Background())
	assert.EqualValues(t, 0, count)
	remote.AssertExpectations(t)
}

func TestSyncDuplicateMarkedSyncedWithoutUpload(t *testing.T) {
	store := newMemStore()
	remote := new(MockRemoteAPI)
	syncer := newTestSyncer(store, remote)

	local := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	srv := local.Add(30 * time.Second)
	rec := punchAt("a", models.PunchTypeCheckIn, local)
	assert.NoError(t, store.Insert(context.Background(), &rec))

	remote.On("FetchAttendanceForDate", "emp-1", "2025-06-02").Return(serverRecord(&srv, nil), nil)

	report, err := syncer.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, 0, report.Uploaded)

	count, _ := store.CountUnsynced(context.Background())
	assert.EqualValues(t, 0, count, "duplicate is resolved, not pending")
	remote.AssertNotCalled(t, "UploadCheckIn", mock.Anything)
}

func TestSyncSupersedeMarkedSyncedWithoutUpload(t *testing.T) {
	store := newMemStore()
	remote := new(MockRemoteAPI)
	syncer := newTestSyncer(store, remote)

	local := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	srv := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	rec := punchAt("a", models.PunchTypeCheckIn, local)
	assert.NoError(t, store.Insert(context.Background(), &rec))

	remote.On("FetchAttendanceForDate", "emp-1", "2025-06-02").Return(serverRecord(&srv, nil), nil)

	report, err := syncer.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Superseded)
	remote.AssertNotCalled(t, "UploadCheckIn", mock.Anything)

	count, _ := store.CountUnsynced(context.Background())
	assert.EqualValues(t, 0, count)
}

func TestSyncTransportFailureLeavesRecordUnsynced(t *testing.T) {
	store := newMemStore()
	remote := new(MockRemoteAPI)
	syncer := newTestSyncer(store, remote)

	ts := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	rec := punchAt("a", models.PunchTypeCheckIn, ts)
	assert.NoError(t, store.Insert(context.Background(), &rec))

	remote.On("FetchAttendanceForDate", "emp-1", "2025-06-02").Return(nil, nil).Once()
	remote.On("UploadCheckIn", mock.Anything).Return(&TransportError{Op: "uploadCheckIn"}).Once()

	report, err := syncer.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, report.Failed)

	count, _ := store.CountUnsynced(context.Background())
	assert.EqualValues(t, 1, count, "never discarded on transport failure")

	// รอบถัดไป upload ผ่าน record เดิมต้องถูกเก็บจนหมด (at-least-once)
	remote.On("FetchAttendanceForDate", "emp-1", "2025-06-02").Return(nil, nil).Once()
	remote.On("UploadCheckIn", mock.Anything).Return(nil).Once()

	report, err = syncer.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, report.Uploaded)

	count, _ = store.CountUnsynced(context.Background())
	assert.EqualValues(t, 0, count)
}

func TestSyncFetchFailureSkipsWholeGroup(t *testing.T) {
	store := newMemStore()
	remote := new(MockRemoteAPI)
	syncer := newTestSyncer(store, remote)

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	in := punchAt("a", models.PunchTypeCheckIn, day.Add(9*time.Hour))
	out := punchAt("b", models.PunchTypeCheckOut, day.Add(17*time.Hour))
	assert.NoError(t, store.Insert(context.Background(), &in))
	assert.NoError(t, store.Insert(context.Background(), &out))

	remote.On("FetchAttendanceForDate", "emp-1", "2025-06-02").
		Return(nil, &TransportError{Op: "fetchAttendanceForDate"})

	report, err := syncer.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Failed)
	remote.AssertNotCalled(t, "UploadCheckIn", mock.Anything)
	remote.AssertNotCalled(t, "UploadCheckOut", mock.Anything)

	count, _ := store.CountUnsynced(context.Background())
	assert.EqualValues(t, 2, count)
}

func TestSyncUploadsInTimestampOrder(t *testing.T) {
	store := newMemStore()
	remote := new(MockRemoteAPI)
	syncer := newTestSyncer(store, remote)

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	// insert สลับลำดับเวลา
	recs := []models.OfflineAttendanceRecord{
		punchAt("late", models.PunchTypeCheckOut, day.Add(17*time.Hour)),
		punchAt("early", models.PunchTypeCheckIn, day.Add(9*time.Hour)),
	}
	for i := range recs {
		assert.NoError(t, store.Insert(context.Background(), &recs[i]))
	}

	var uploaded []string
	remote.On("FetchAttendanceForDate", "emp-1", "2025-06-02").Return(nil, nil)
	remote.On("UploadCheckIn", mock.Anything).Run(func(args mock.Arguments) {
		uploaded = append(uploaded, args.Get(0).(*models.OfflineAttendanceRecord).ID)
	}).Return(nil)
	remote.On("UploadCheckOut", mock.Anything).Run(func(args mock.Arguments) {
		uploaded = append(uploaded, args.Get(0).(*models.OfflineAttendanceRecord).ID)
	}).Return(nil)

	_, err := syncer.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"early", "late"}, uploaded, "replay preserves causal order")
}

func TestSyncSingleFlight(t *testing.T) {
	store := newMemStore()
	remote := new(MockRemoteAPI)
	syncer := newTestSyncer(store, remote)

	syncer.running.Store(true)
	_, err := syncer.Run(context.Background())
	assert.ErrorIs(t, err, ErrSyncInProgress)
	syncer.running.Store(false)
}

func TestPurgeKeepsUnsyncedRegardlessOfAge(t *testing.T) {
	store := newMemStore()
	remote := new(MockRemoteAPI)
	syncer := newTestSyncer(store, remote)

	old := time.Now().Add(-90 * 24 * time.Hour)
	syncedOld := punchAt("synced-old", models.PunchTypeCheckIn, old)
	syncedOld.Synced = true
	unsyncedOld := punchAt("unsynced-old", models.PunchTypeCheckIn, old.Add(time.Hour))

	assert.NoError(t, store.Insert(context.Background(), &syncedOld))
	assert.NoError(t, store.Insert(context.Background(), &unsyncedOld))

	purged, err := syncer.Purge(context.Background())
	assert.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	count, _ := store.CountUnsynced(context.Background())
	assert.EqualValues(t, 1, count, "unsynced record survives any cutoff")
}

func TestSyncReportsProgressSignal(t *testing.T) {
	store := newMemStore()
	remote := new(MockRemoteAPI)
	syncer := newTestSyncer(store, remote)

	var fromCallback *SyncReport
	syncer.OnResult(func(r SyncReport) { fromCallback = &r })

	assert.False(t, syncer.Status().Running)
	assert.Nil(t, syncer.Status().LastReport)

	report, err := syncer.Run(context.Background())
	assert.NoError(t, err)

	status := syncer.Status()
	assert.False(t, status.Running)
	assert.Equal(t, report, status.LastReport)
	assert.NotNil(t, fromCallback)
}
