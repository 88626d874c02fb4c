package attendance

type SubmitRequest struct {
	PIN  string `json:"pin" binding:"required"`
	Type string `json:"type" binding:"required,oneof=CHECK_IN CHECK_OUT"`
}

type SubmitResponse struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	AttendanceDate string `json:"attendance_date"`
	RecordedAt     string `json:"recorded_at"`
	OutsideWindow  bool   `json:"outside_window"`
	Message        string `json:"message"`
}

type HistoryItem struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	AttendanceDate string `json:"attendance_date"`
	RecordedAt     string `json:"recorded_at"`
	OutsideWindow  bool   `json:"outside_window"`
}
