package events

import "time"

const AttendanceRecordedTopic = "pkl.attendance.recorded.v1"

type AttendanceRecordedEvent struct {
	EventType      string    `json:"event_type"`
	RecordID       string    `json:"record_id"`
	StudentID      string    `json:"student_id"`
	LocationID     string    `json:"location_id"`
	Type           string    `json:"type"`
	AttendanceDate string    `json:"attendance_date"`
	RecordedAt     time.Time `json:"recorded_at"`
	OutsideWindow  bool      `json:"outside_window"`
	OccurredAt     time.Time `json:"occurred_at"`
}
