package attendance

import (
	"errors"
	"fmt"
)

// ErrSyncInProgress มี sync pass วิ่งอยู่แล้ว อนุญาตครั้งละหนึ่ง pass ต่อเครื่อง
var ErrSyncInProgress = errors.New("sync already in progress")

// ValidationError การลงเวลาที่ถูกปฏิเสธตั้งแต่ฝั่งเครื่อง จะไม่ถูกบันทึกลง store
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// TransportError การเรียก remote attendance API ล้มเหลว
// record ที่เกี่ยวข้องจะค้าง unsynced ไว้ให้รอบถัดไป ไม่มีการทิ้ง
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
