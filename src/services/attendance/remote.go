package attendance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Backend-PunchSync/src/models"
)

// RemoteAPI collaborator ฝั่ง server ที่เป็น source of truth ของข้อมูลการลงเวลา
// FetchAttendanceForDate คืน nil เมื่อ server ยังไม่มี record ของวันนั้น
type RemoteAPI interface {
	FetchAttendanceForDate(ctx context.Context, employeeID, date string) (*models.AttendanceResponse, error)
	UploadCheckIn(ctx context.Context, rec *models.OfflineAttendanceRecord) error
	UploadCheckOut(ctx context.Context, rec *models.OfflineAttendanceRecord) error
}

// HTTPRemoteAPI เรียก remote attendance API ผ่าน HTTP
// ทุก request ลองซ้ำแบบ exponential backoff และ error ทั้งหมดห่อเป็น TransportError
type HTTPRemoteAPI struct {
	baseURL    string
	client     *http.Client
	maxRetries int
}

func NewHTTPRemoteAPI(baseURL string) *HTTPRemoteAPI {
	return &HTTPRemoteAPI{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: 20 * time.Second},
		maxRetries: 3,
	}
}

func (a *HTTPRemoteAPI) FetchAttendanceForDate(ctx context.Context, employeeID, date string) (*models.AttendanceResponse, error) {
	endpoint := fmt.Sprintf("%s/attendance?employeeId=%s&date=%s",
		a.baseURL, url.QueryEscape(employeeID), url.QueryEscape(date))

	var out *models.AttendanceResponse
	err := a.withRetry(ctx, "fetchAttendanceForDate", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		res, err := a.client.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		// 404 = server ยังไม่มีการลงเวลาของวันนั้น ไม่ใช่ error
		if res.StatusCode == http.StatusNotFound {
			out = nil
			return nil
		}
		if res.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %s", res.Status)
		}

		var resp models.AttendanceResponse
		if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
			return err
		}
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *HTTPRemoteAPI) UploadCheckIn(ctx context.Context, rec *models.OfflineAttendanceRecord) error {
	return a.upload(ctx, "uploadCheckIn", "/attendance/checkin", rec)
}

func (a *HTTPRemoteAPI) UploadCheckOut(ctx context.Context, rec *models.OfflineAttendanceRecord) error {
	return a.upload(ctx, "uploadCheckOut", "/attendance/checkout", rec)
}

func (a *HTTPRemoteAPI) upload(ctx context.Context, op, path string, rec *models.OfflineAttendanceRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return a.withRetry(ctx, op, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		res, err := a.client.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
			b, _ := io.ReadAll(res.Body)
			return fmt.Errorf("unexpected status %s: %s", res.Status, string(b))
		}
		return nil
	})
}

// withRetry ลองซ้ำสูงสุด maxRetries ครั้ง เว้นช่วงแบบ exponential backoff
func (a *HTTPRemoteAPI) withRetry(ctx context.Context, op string, fn func() error) error {
	backoff := 500 * time.Millisecond
	var lastErr error
	for attempt := 0; attempt < a.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return &TransportError{Op: op, Err: ctx.Err()}
			case <-time.After(backoff):
			}
			backoff *= 2
		}
		if lastErr = fn(); lastErr == nil {
			return nil
		}
	}
	return &TransportError{Op: op, Err: lastErr}
}
