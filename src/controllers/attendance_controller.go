package controllers

import (
	"errors"
	"time"

	"Backend-PunchSync/src/models"
	"Backend-PunchSync/src/services/attendance"
	"Backend-PunchSync/src/utils"

	"github.com/gofiber/fiber/v2"
)

// AttendanceController จุดรับคำขอลงเวลาจาก mobile shell
type AttendanceController struct {
	punch *attendance.PunchService
	cache attendance.StatusCache
	store attendance.Store
	loc   *time.Location
}

func NewAttendanceController(punch *attendance.PunchService, cache attendance.StatusCache, store attendance.Store, loc *time.Location) *AttendanceController {
	return &AttendanceController{punch: punch, cache: cache, store: store, loc: loc}
}

// Punch godoc
// @Summary Record a punch
// @Description Record a check-in or check-out punch. Persisted locally first, uploaded by the next sync pass.
// @Tags attendance
// @Accept json
// @Produce json
// @Param punch body models.PunchRequest true "Punch payload"
// @Success 201 {object} models.OfflineAttendanceRecord
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /attendance/punch [post]
func (ctl *AttendanceController) Punch(c *fiber.Ctx) error {
	employeeID, _ := c.Locals("employeeId").(string)

	var req models.PunchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "ไม่สามารถอ่านคำขอได้")
	}

	rec, err := ctl.punch.Punch(c.Context(), employeeID, &req)
	if err != nil {
		var vErr *attendance.ValidationError
		if errors.As(err, &vErr) {
			return utils.HandleError(c, fiber.StatusBadRequest, vErr.Error())
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}

	// ลงเครื่องสำเร็จแล้ว ยิงงาน sync ตามหลังโดยไม่รอผล
	enqueueSync("punch")

	return c.Status(fiber.StatusCreated).JSON(rec)
}

// Status godoc
// @Summary Daily attendance status
// @Description Cached per-date status (checked in/out, punch times) for the dashboard
// @Tags attendance
// @Produce json
// @Param date query string false "Date (2006-01-02), default today"
// @Success 200 {object} models.DailyStatus
// @Failure 401 {object} models.ErrorResponse
// @Router /attendance/status [get]
func (ctl *AttendanceController) Status(c *fiber.Ctx) error {
	employeeID, _ := c.Locals("employeeId").(string)

	date := c.Query("date")
	if date == "" {
		date = time.Now().In(ctl.loc).Format("2006-01-02")
	}

	status, err := ctl.cache.GetForDate(c.Context(), employeeID, date)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	if status == nil {
		// ยังไม่เคยลงเวลาในวันนั้น
		status = &models.DailyStatus{Date: date}
	}
	return c.JSON(status)
}

// UnsyncedCount godoc
// @Summary Pending record count
// @Description Number of local punches not yet confirmed by the remote service
// @Tags attendance
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Router /attendance/unsynced [get]
func (ctl *AttendanceController) UnsyncedCount(c *fiber.Ctx) error {
	count, err := ctl.store.CountUnsynced(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"unsynced": count})
}
