package attendance

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"Backend-PunchSync/src/models"
)

// SyncReport สรุปผลของ sync pass หนึ่งรอบ
type SyncReport struct {
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Uploaded   int       `json:"uploaded"`
	Duplicates int       `json:"duplicates"`
	Superseded int       `json:"superseded"`
	Anomalies  int       `json:"anomalies"`
	Failed     int       `json:"failed"`
	Purged     int64     `json:"purged"`
}

// SyncStatus สัญญาณความคืบหน้า แยกจากตัวผลลัพธ์ ไม่เอาสถานะ loading ไปปนใน report
type SyncStatus struct {
	Running    bool        `json:"running"`
	LastReport *SyncReport `json:"lastReport,omitempty"`
}

// Syncer ขับ sync pass: ดึง record ค้าง -> resolve กับ server -> upload/ติดธง -> purge
// อนุญาตครั้งละหนึ่ง pass ต่อเครื่อง
type Syncer struct {
	store     Store
	cache     StatusCache
	remote    RemoteAPI
	resolver  *Resolver
	loc       *time.Location
	retention time.Duration
	now       func() time.Time

	running  atomic.Bool
	mu       sync.Mutex
	last     *SyncReport
	onResult func(SyncReport)
}

func NewSyncer(store Store, cache StatusCache, remote RemoteAPI, resolver *Resolver, loc *time.Location, retention time.Duration) *Syncer {
	return &Syncer{
		store:     store,
		cache:     cache,
		remote:    remote,
		resolver:  resolver,
		loc:       loc,
		retention: retention,
		now:       time.Now,
	}
}

// OnResult ลงทะเบียน callback ที่ฝั่ง presentation ใช้ subscribe ผลหลังจบ pass
func (s *Syncer) OnResult(fn func(SyncReport)) {
	s.mu.Lock()
	s.onResult = fn
	s.mu.Unlock()
}

// Status รายงานว่ามี pass วิ่งอยู่ไหม พร้อม report ล่าสุด
func (s *Syncer) Status() SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := SyncStatus{Running: s.running.Load()}
	if s.last != nil {
		r := *s.last
		status.LastReport = &r
	}
	return status
}

// Run ทำ sync pass หนึ่งรอบ ถ้ามีรอบอื่นวิ่งอยู่คืน ErrSyncInProgress ทันที
// ความปลอดภัยตอน retry มาจาก resolver ที่ deterministic + idempotent:
// pass ที่พังกลางทางปล่อย record ค้าง unsynced ไว้ แล้วรอบถัดไปตัดสินซ้ำได้ผลเดิม
func (s *Syncer) Run(ctx context.Context) (*SyncReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer s.running.Store(false)

	report := SyncReport{StartedAt: s.now()}

	records, err := s.store.ListUnsynced(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unsynced: %w", err)
	}

	for key, group := range GroupByEmployeeDate(records, s.loc) {
		server, err := s.remote.FetchAttendanceForDate(ctx, key.EmployeeID, key.Date)
		if err != nil {
			// ดึง snapshot ไม่ได้ ทั้งกลุ่มค้าง unsynced ไว้รอรอบหน้า
			log.Println("⚠️ fetch attendance failed:", key.EmployeeID, key.Date, err)
			report.Failed += len(group)
			continue
		}

		for _, res := range s.resolver.Resolve(group, server) {
			switch res.Decision {
			case Accept:
				if res.Anomaly {
					report.Anomalies++
					log.Println("⚠️ check-out without preceding check-in:", res.Record.ID)
				}
				if err := s.upload(ctx, &res.Record); err != nil {
					// upload ไม่ขึ้น ปล่อยค้าง unsynced (at-least-once, resolver กันซ้ำให้รอบหน้า)
					log.Println("❌ upload failed:", res.Record.ID, err)
					report.Failed++
					continue
				}
				if err := s.store.MarkSynced(ctx, res.Record.ID); err != nil {
					return nil, fmt.Errorf("mark synced %s: %w", res.Record.ID, err)
				}
				report.Uploaded++
			case Duplicate, Supersede:
				// resolve จบแล้ว ไม่มีอะไรต้อง upload ติดธง synced ได้เลย
				if err := s.store.MarkSynced(ctx, res.Record.ID); err != nil {
					return nil, fmt.Errorf("mark synced %s: %w", res.Record.ID, err)
				}
				if res.Decision == Duplicate {
					report.Duplicates++
				} else {
					report.Superseded++
				}
			}
		}
	}

	purged, err := s.Purge(ctx)
	if err != nil {
		log.Println("⚠️ purge failed:", err)
	}
	report.Purged = purged

	report.FinishedAt = s.now()
	s.mu.Lock()
	s.last = &report
	cb := s.onResult
	s.mu.Unlock()
	if cb != nil {
		cb(report)
	}
	return &report, nil
}

// Purge retention: ลบ record ที่ sync แล้วพ้นช่วงเก็บ และ cache รายวันที่เก่ากว่า cutoff
// ของที่ยังไม่ sync ไม่ถูกแตะ
func (s *Syncer) Purge(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	purged, err := s.store.PurgeSyncedOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	dateCutoff := cutoff.In(s.loc).Format("2006-01-02")
	if _, err := s.cache.PurgeBefore(ctx, dateCutoff); err != nil {
		return purged, err
	}
	return purged, nil
}

func (s *Syncer) upload(ctx context.Context, rec *models.OfflineAttendanceRecord) error {
	if rec.Type == models.PunchTypeCheckOut {
		return s.remote.UploadCheckOut(ctx, rec)
	}
	return s.remote.UploadCheckIn(ctx, rec)
}
