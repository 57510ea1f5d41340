package attendance

import (
	"sort"
	"time"

	"Backend-PunchSync/src/models"
)

// Decision ผลตัดสินของ resolver ต่อ record หนึ่งตัว
type Decision int

const (
	// Accept ส่งขึ้น server เป็นเหตุการณ์ใหม่
	Accept Decision = iota
	// Supersede ฝั่ง server มีเหตุการณ์ประเภทนี้อยู่ก่อนแล้ว ตัวที่มาทีหลังถือว่า stale ทิ้งโดยไม่ upload
	Supersede
	// Duplicate เหตุการณ์เดียวกับที่ server รู้อยู่แล้ว ทิ้งโดยไม่ upload
	Duplicate
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Supersede:
		return "supersede"
	case Duplicate:
		return "duplicate"
	}
	return "unknown"
}

// Resolution ผลของ record หนึ่งตัวหลัง resolve
// Anomaly = check-out ที่ไม่มี check-in นำหน้า ยัง upload ตามปกติ ให้ server เป็นคนตัดสินความถูกต้อง
type Resolution struct {
	Record   models.OfflineAttendanceRecord
	Decision Decision
	Anomaly  bool
}

// GroupKey กลุ่มของ record สำหรับ reconcile รอบเดียวกัน
type GroupKey struct {
	EmployeeID string
	Date       string
}

// GroupByEmployeeDate จัดกลุ่ม record ตาม (พนักงาน, วันที่) วันที่คิดตาม location ที่กำหนด
func GroupByEmployeeDate(records []models.OfflineAttendanceRecord, loc *time.Location) map[GroupKey][]models.OfflineAttendanceRecord {
	groups := make(map[GroupKey][]models.OfflineAttendanceRecord)
	for _, rec := range records {
		key := GroupKey{
			EmployeeID: rec.EmployeeID,
			Date:       rec.Timestamp.In(loc).Format("2006-01-02"),
		}
		groups[key] = append(groups[key], rec)
	}
	return groups
}

// Resolver merge การลงเวลา offline เข้ากับข้อมูลจาก server
// เป็น logic ล้วน ไม่แตะ I/O เพื่อให้ deterministic: input เดิมได้ผลเดิมเสมอ replay หลังพังกลางทางได้
type Resolver struct {
	window time.Duration
}

func NewResolver(window time.Duration) *Resolver {
	if window <= 0 {
		window = DefaultCooldownWindow
	}
	return &Resolver{window: window}
}

// Resolve ตัดสิน record ทุกตัวในกลุ่มเดียวกัน (พนักงานเดียว วันเดียว) เทียบกับ snapshot จาก server
// ลำดับ input ไม่มีผล record ถูกเรียงตาม timestamp (ผูก tie ด้วย id) ก่อนตัดสินเสมอ
func (r *Resolver) Resolve(records []models.OfflineAttendanceRecord, server *models.AttendanceResponse) []Resolution {
	sorted := make([]models.OfflineAttendanceRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	hasCheckIn := server != nil && server.CheckInTime != nil

	resolutions := make([]Resolution, 0, len(sorted))
	for _, rec := range sorted {
		res := Resolution{Record: rec, Decision: r.decide(rec, server)}
		if rec.Type == models.PunchTypeCheckOut && !hasCheckIn {
			res.Anomaly = true
		}
		if rec.Type == models.PunchTypeCheckIn && res.Decision == Accept {
			hasCheckIn = true
		}
		resolutions = append(resolutions, res)
	}
	return resolutions
}

func (r *Resolver) decide(rec models.OfflineAttendanceRecord, server *models.AttendanceResponse) Decision {
	var serverTime *time.Time
	if server != nil {
		switch rec.Type {
		case models.PunchTypeCheckIn:
			serverTime = server.CheckInTime
		case models.PunchTypeCheckOut:
			serverTime = server.CheckOutTime
		}
	}

	// server ยังไม่มีเหตุการณ์ประเภทนี้ของวันนั้น
	if serverTime == nil {
		return Accept
	}

	// ห่างกันไม่ถึง cooldown window ถือเป็นเหตุการณ์เดียวกัน
	// เวลาเท่ากันพอดีก็เข้าเคสนี้ ยกให้ฝั่ง server ไม่ apply เหตุการณ์เดิมซ้ำ
	if rec.Timestamp.Sub(*serverTime).Abs() < r.window {
		return Duplicate
	}

	// server บันทึกไว้ก่อนแล้ว punch ฝั่งเครื่องที่มาทีหลังเป็นของ stale
	if rec.Timestamp.After(*serverTime) {
		return Supersede
	}

	// เหตุการณ์ฝั่งเครื่องเกิดก่อนที่ server รู้ เช่นลงเวลาไว้ตอน offline
	// แล้ว session อื่นไป sync ตัวซ้ำขึ้นก่อน เป็นเหตุการณ์จริงที่ตกหล่น ส่งขึ้นไป
	return Accept
}
