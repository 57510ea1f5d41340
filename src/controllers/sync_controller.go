package controllers

import (
	"errors"
	"log"

	"Backend-PunchSync/src/database"
	"Backend-PunchSync/src/jobs"
	"Backend-PunchSync/src/services/attendance"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

// SyncController trigger และสถานะของ sync pass
type SyncController struct {
	syncer *attendance.Syncer
}

func NewSyncController(syncer *attendance.Syncer) *SyncController {
	return &SyncController{syncer: syncer}
}

// Trigger godoc
// @Summary Trigger a sync pass
// @Description Called by the mobile shell when connectivity is regained. Sync runs in the background.
// @Tags sync
// @Produce json
// @Success 202 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Router /sync/trigger [post]
func (ctl *SyncController) Trigger(c *fiber.Ctx) error {
	enqueueSync("connectivity")
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "sync scheduled"})
}

// Status godoc
// @Summary Sync progress
// @Description In-flight flag plus the last completed sync report
// @Tags sync
// @Produce json
// @Success 200 {object} attendance.SyncStatus
// @Failure 401 {object} models.ErrorResponse
// @Router /sync/status [get]
func (ctl *SyncController) Status(c *fiber.Ctx) error {
	return c.JSON(ctl.syncer.Status())
}

// enqueueSync ยิงงาน sync เข้า queue ใช้ TaskID เดิมกันงานซ้อนกันในคิว
func enqueueSync(reason string) {
	if database.AsynqClient == nil {
		return
	}
	task, err := jobs.NewSyncAttendanceTask(reason)
	if err != nil {
		log.Println("sync task create failed:", err)
		return
	}
	if _, err := database.AsynqClient.Enqueue(task, asynq.TaskID("attendance-sync-"+reason)); err != nil &&
		!errors.Is(err, asynq.ErrTaskIDConflict) {
		log.Println("sync task enqueue failed:", err)
	}
}
