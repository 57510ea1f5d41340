package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeSyncAttendance = "attendance:sync"

// SyncAttendancePayload บอกที่มาของการยิง sync ไว้ดูใน log
type SyncAttendancePayload struct {
	Reason string `json:"reason"` // punch | connectivity | schedule
}

func NewSyncAttendanceTask(reason string) (*asynq.Task, error) {
	payload, err := json.Marshal(SyncAttendancePayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSyncAttendance, payload), nil
}

const TypePurgeAttendance = "attendance:purge"

func NewPurgeAttendanceTask() (*asynq.Task, error) {
	return asynq.NewTask(TypePurgeAttendance, nil), nil
}
