package timewindow

type UpdateConfigRequest struct {
	CheckInStart  string `json:"check_in_start" binding:"required"`
	CheckInEnd    string `json:"check_in_end" binding:"required"`
	CheckOutStart string `json:"check_out_start" binding:"required"`
	CheckOutEnd   string `json:"check_out_end" binding:"required"`
	Enforcement   string `json:"enforcement" binding:"required,oneof=BLOCK ANNOTATE_ONLY"`
	IsActive      *bool  `json:"is_active" binding:"required"`
	// Versi terakhir yang dibaca caller; update ditolak tanpa ini.
	ExpectedVersion *int64 `json:"expected_version" binding:"required"`
	// Opsional: coba ulang otomatis dengan versi terbaru saat versi bergeser.
	RetryWithLatest bool `json:"retry_with_latest"`
}

type ConfigResponse struct {
	ID            string `json:"id"`
	CheckInStart  string `json:"check_in_start"`
	CheckInEnd    string `json:"check_in_end"`
	CheckOutStart string `json:"check_out_start"`
	CheckOutEnd   string `json:"check_out_end"`
	Enforcement   string `json:"enforcement"`
	IsActive      bool   `json:"is_active"`
	Version       int64  `json:"version"`
}

func toResponse(c *Config) ConfigResponse {
	return ConfigResponse{
		ID:            c.ID.String(),
		CheckInStart:  c.CheckInStart,
		CheckInEnd:    c.CheckInEnd,
		CheckOutStart: c.CheckOutStart,
		CheckOutEnd:   c.CheckOutEnd,
		Enforcement:   c.Enforcement,
		IsActive:      c.IsActive,
		Version:       c.Version,
	}
}
