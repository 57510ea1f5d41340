package models

import "time"

// ประเภทการลงเวลา
const (
	PunchTypeCheckIn  = "check_in"
	PunchTypeCheckOut = "check_out"
)

// ประเภทการสแกน biometric
const (
	ScanTypeFace   = "face"
	ScanTypeFinger = "finger"
)

// OfflineAttendanceRecord การลงเวลาที่บันทึกลงเครื่องไว้ก่อน รอ sync ขึ้น server
// จะถูกแก้ไขแค่การติดธง synced เท่านั้น และถูกลบเมื่อ sync แล้วพ้นช่วง retention
type OfflineAttendanceRecord struct {
	ID         string     `bson:"_id" json:"id"`
	EmployeeID string     `bson:"employeeId" json:"employeeId"`
	Type       string     `bson:"type" json:"type"` // check_in | check_out
	Lat        float64    `bson:"lat" json:"lat"`
	Long       float64    `bson:"long" json:"long"`
	ScanType   string     `bson:"scanType" json:"scanType"` // face | finger
	Timestamp  time.Time  `bson:"timestamp" json:"timestamp"`
	Synced     bool       `bson:"synced" json:"synced"`
	SyncedAt   *time.Time `bson:"syncedAt,omitempty" json:"syncedAt,omitempty"`
}

// DailyStatus สถานะการลงเวลาของวันหนึ่ง ใช้เช็ค cooldown และตอบ dashboard
// เวลาเก็บเป็น unix milliseconds
type DailyStatus struct {
	Date          string `json:"date"`
	HasCheckedIn  bool   `json:"hasCheckedIn"`
	HasCheckedOut bool   `json:"hasCheckedOut"`
	CheckInTime   int64  `json:"checkInTime,omitempty"`
	CheckOutTime  int64  `json:"checkOutTime,omitempty"`
	LastPunchTime int64  `json:"lastPunchTime,omitempty"`
}

// AttendanceResponse ข้อมูลการลงเวลาฝั่ง server เป็น source of truth ตอน reconcile
type AttendanceResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	Status       string     `json:"status"`
	Message      string     `json:"message"`
}
