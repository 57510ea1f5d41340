package attendance

import (
	"context"
	"time"

	"Backend-PunchSync/src/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// PunchService รับคำขอลงเวลาจาก mobile shell
// ตรวจสอบ + กันกดซ้ำ แล้วบันทึกลงเครื่องก่อนเสมอ แม้ตอนนั้นจะ online อยู่
// (เป็น durability buffer ตัว upload จริงเป็นหน้าที่ของ sync pass)
type PunchService struct {
	store    Store
	cache    StatusCache
	validate *validator.Validate
	loc      *time.Location
	now      func() time.Time
}

func NewPunchService(store Store, cache StatusCache, loc *time.Location) *PunchService {
	return &PunchService{
		store:    store,
		cache:    cache,
		validate: validator.New(),
		loc:      loc,
		now:      time.Now,
	}
}

// Punch บันทึกการลงเวลาหนึ่งครั้ง
// ทุกคำขอจบอย่างใดอย่างหนึ่งเสมอ: record ลง store, ValidationError พร้อมเหตุผล, หรือ error จาก storage
func (s *PunchService) Punch(ctx context.Context, employeeID string, req *models.PunchRequest) (*models.OfflineAttendanceRecord, error) {
	if employeeID == "" {
		return nil, &ValidationError{Field: "employeeId", Reason: "missing employee id"}
	}
	if err := s.validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return nil, &ValidationError{Field: errs[0].Field(), Reason: "invalid value"}
		}
		return nil, &ValidationError{Field: "request", Reason: err.Error()}
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	date := ts.In(s.loc).Format("2006-01-02")

	// duplicate-punch guard: ลงเวลาซ้ำภายใน cooldown window ของวันเดียวกันไม่บันทึก
	within, err := s.cache.IsWithinCooldown(ctx, employeeID, date, ts)
	if err != nil {
		return nil, err
	}
	if within {
		return nil, &ValidationError{Field: "timestamp", Reason: "within cooldown window"}
	}

	rec := &models.OfflineAttendanceRecord{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Type:       req.Type,
		Lat:        req.Lat,
		Long:       req.Long,
		ScanType:   req.ScanType,
		Timestamp:  ts,
		Synced:     false,
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		return nil, err
	}

	switch req.Type {
	case models.PunchTypeCheckIn:
		err = s.cache.RecordCheckIn(ctx, employeeID, date, ts)
	case models.PunchTypeCheckOut:
		err = s.cache.RecordCheckOut(ctx, employeeID, date, ts)
	}
	if err != nil {
		// record ลงเครื่องไปแล้ว cache ค่อยตามทันตอน punch ถัดไปหรือ sync รอบหน้า
		return rec, err
	}
	return rec, nil
}
