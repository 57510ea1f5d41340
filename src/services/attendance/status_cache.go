package attendance

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"Backend-PunchSync/src/models"

	"github.com/redis/go-redis/v9"
)

// DefaultCooldownWindow ช่วงเวลาขั้นต่ำระหว่างการลงเวลาสองครั้งในวันเดียวกัน
// กันการกดซ้ำโดยไม่ตั้งใจ
const DefaultCooldownWindow = 120 * time.Second

// StatusCache สถานะการลงเวลารายวัน ต่อ (พนักงาน, วันที่)
type StatusCache interface {
	GetForDate(ctx context.Context, employeeID, date string) (*models.DailyStatus, error)
	RecordCheckIn(ctx context.Context, employeeID, date string, t time.Time) error
	RecordCheckOut(ctx context.Context, employeeID, date string, t time.Time) error
	IsWithinCooldown(ctx context.Context, employeeID, date string, now time.Time) (bool, error)
	Touch(ctx context.Context, employeeID, date string, t time.Time) error
	PurgeBefore(ctx context.Context, dateCutoff string) (int64, error)
}

// RedisStatusCache เก็บสถานะรายวันเป็น hash ต่อ key หนึ่งวัน
// การเขียนถูก serialize ด้วย mutex เพื่อไม่ให้ lastPunchTime ถอยหลังจาก update ชนกัน
type RedisStatusCache struct {
	rdb    *redis.Client
	window time.Duration
	mu     sync.Mutex
}

func NewRedisStatusCache(rdb *redis.Client, window time.Duration) *RedisStatusCache {
	if window <= 0 {
		window = DefaultCooldownWindow
	}
	return &RedisStatusCache{rdb: rdb, window: window}
}

func dailyKey(employeeID, date string) string {
	return fmt.Sprintf("attendance:daily:%s:%s", employeeID, date)
}

// GetForDate คืน nil ถ้ายังไม่เคยลงเวลาในวันนั้น
func (c *RedisStatusCache) GetForDate(ctx context.Context, employeeID, date string) (*models.DailyStatus, error) {
	vals, err := c.rdb.HGetAll(ctx, dailyKey(employeeID, date)).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, nil
	}

	status := &models.DailyStatus{Date: date}
	status.HasCheckedIn = vals["hasCheckedIn"] == "1"
	status.HasCheckedOut = vals["hasCheckedOut"] == "1"
	status.CheckInTime, _ = strconv.ParseInt(vals["checkInTime"], 10, 64)
	status.CheckOutTime, _ = strconv.ParseInt(vals["checkOutTime"], 10, 64)
	status.LastPunchTime, _ = strconv.ParseInt(vals["lastPunchTime"], 10, 64)
	return status, nil
}

// RecordCheckIn ติดธง check-in แบบ idempotent
// เวลา check-in ตั้งได้ครั้งเดียวต่อวัน แต่ lastPunchTime ขยับทุกครั้งที่ punch ผ่าน
func (c *RedisStatusCache) RecordCheckIn(ctx context.Context, employeeID, date string, t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := dailyKey(employeeID, date)
	ms := t.UnixMilli()
	if err := c.rdb.HSetNX(ctx, key, "checkInTime", ms).Err(); err != nil {
		return err
	}
	if err := c.rdb.HSet(ctx, key, "hasCheckedIn", "1").Err(); err != nil {
		return err
	}
	return c.touchLocked(ctx, key, ms)
}

// RecordCheckOut เหมือน RecordCheckIn แต่ฝั่ง check-out
func (c *RedisStatusCache) RecordCheckOut(ctx context.Context, employeeID, date string, t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := dailyKey(employeeID, date)
	ms := t.UnixMilli()
	if err := c.rdb.HSetNX(ctx, key, "checkOutTime", ms).Err(); err != nil {
		return err
	}
	if err := c.rdb.HSet(ctx, key, "hasCheckedOut", "1").Err(); err != nil {
		return err
	}
	return c.touchLocked(ctx, key, ms)
}

// IsWithinCooldown คือ duplicate-punch guard
// true เมื่อ now - lastPunchTime < window ของวันเดียวกัน
func (c *RedisStatusCache) IsWithinCooldown(ctx context.Context, employeeID, date string, now time.Time) (bool, error) {
	last, err := c.rdb.HGet(ctx, dailyKey(employeeID, date), "lastPunchTime").Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return withinCooldown(last, now.UnixMilli(), c.window), nil
}

// Touch ขยับ lastPunchTime ของวันนั้น ใช้กับ punch ที่ผ่าน cooldown แล้ว
func (c *RedisStatusCache) Touch(ctx context.Context, employeeID, date string, t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touchLocked(ctx, dailyKey(employeeID, date), t.UnixMilli())
}

// touchLocked เขียน lastPunchTime แบบ monotonic ไม่ยอมให้ค่าถอยหลังภายในวันเดียวกัน
func (c *RedisStatusCache) touchLocked(ctx context.Context, key string, ms int64) error {
	last, err := c.rdb.HGet(ctx, key, "lastPunchTime").Int64()
	if err != nil && err != redis.Nil {
		return err
	}
	if ms > last {
		return c.rdb.HSet(ctx, key, "lastPunchTime", ms).Err()
	}
	return nil
}

// PurgeBefore ลบ key รายวันที่เก่ากว่า dateCutoff (รูปแบบ 2006-01-02 เทียบเป็น string ได้เลย)
func (c *RedisStatusCache) PurgeBefore(ctx context.Context, dateCutoff string) (int64, error) {
	var removed int64
	iter := c.rdb.Scan(ctx, 0, "attendance:daily:*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		date := key[strings.LastIndex(key, ":")+1:]
		if date < dateCutoff {
			if err := c.rdb.Del(ctx, key).Err(); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, iter.Err()
}

// withinCooldown ตรรกะ cooldown ล้วน ๆ แยกไว้ให้เทสตรง ๆ ได้
func withinCooldown(lastMs, nowMs int64, window time.Duration) bool {
	return nowMs-lastMs < window.Milliseconds()
}
