package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"Backend-PunchSync/src/services/attendance"

	"github.com/hibiken/asynq"
)

// RegisterHandlers ผูก handler ของงานเบื้องหลังทั้งหมดเข้ากับ mux
func RegisterHandlers(mux *asynq.ServeMux, syncer *attendance.Syncer) {
	mux.HandleFunc(TypeSyncAttendance, HandleSyncAttendanceTask(syncer))
	mux.HandleFunc(TypePurgeAttendance, HandlePurgeAttendanceTask(syncer))
}

// HandleSyncAttendanceTask รัน sync pass หนึ่งรอบ
func HandleSyncAttendanceTask(syncer *attendance.Syncer) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload SyncAttendancePayload
		if len(t.Payload()) > 0 {
			if err := json.Unmarshal(t.Payload(), &payload); err != nil {
				log.Println("❌ Payload decode error:", err)
				return err
			}
		}

		report, err := syncer.Run(ctx)
		if err != nil {
			if errors.Is(err, attendance.ErrSyncInProgress) {
				// มี pass วิ่งอยู่แล้ว record ชุดนี้จะถูกเก็บในรอบถัดไปอยู่ดี ไม่ถือว่า error
				log.Println("⚠️ sync already running, skip (reason: " + payload.Reason + ")")
				return nil
			}
			log.Println("❌ sync pass failed:", err)
			return err
		}

		log.Printf("✅ sync pass done (reason=%s): uploaded=%d duplicate=%d superseded=%d failed=%d purged=%d",
			payload.Reason, report.Uploaded, report.Duplicates, report.Superseded, report.Failed, report.Purged)
		return nil
	}
}

// HandlePurgeAttendanceTask งาน retention รายวัน
func HandlePurgeAttendanceTask(syncer *attendance.Syncer) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		purged, err := syncer.Purge(ctx)
		if err != nil {
			log.Println("❌ purge failed:", err)
			return err
		}
		log.Println("✅ purged synced records:", purged)
		return nil
	}
}

// StartWorker รัน asynq server สำหรับงาน sync เบื้องหลัง
// Concurrency 1 เพราะ sync ต้องวิ่งทีละ pass อยู่แล้ว
func StartWorker(redisURI string, syncer *attendance.Syncer) *asynq.Server {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisURI},
		asynq.Config{Concurrency: 1},
	)

	mux := asynq.NewServeMux()
	RegisterHandlers(mux, syncer)

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatal("❌ asynq worker error:", err)
		}
	}()
	log.Println("✅ Attendance sync worker started")
	return srv
}

// StartScheduler ตั้งงานประจำ: sync ทุก 5 นาที (กัน trigger หาย) และ purge วันละรอบ
func StartScheduler(redisURI string) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(asynq.RedisClientOpt{Addr: redisURI}, nil)

	syncTask, err := NewSyncAttendanceTask("schedule")
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register("@every 5m", syncTask); err != nil {
		return nil, err
	}

	purgeTask, err := NewPurgeAttendanceTask()
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register("@every 24h", purgeTask); err != nil {
		return nil, err
	}

	if err := scheduler.Start(); err != nil {
		return nil, err
	}
	log.Println("✅ Attendance sync scheduler started")
	return scheduler, nil
}
