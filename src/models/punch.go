package models

import "time"

// PunchRequest คำขอลงเวลาจาก mobile shell
// Timestamp มาจาก clock provider ของเครื่อง ถ้าว่างใช้เวลาปัจจุบันของ service
type PunchRequest struct {
	Type      string    `json:"type" validate:"required,oneof=check_in check_out"`
	ScanType  string    `json:"scanType" validate:"required,oneof=face finger"`
	Lat       float64   `json:"lat" validate:"latitude"`
	Long      float64   `json:"long" validate:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}
