// FILE: internal/dto/report_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReportRequest struct {
	FileName string                 `json:"file_name" validate:"required"`
	Payload  map[string]interface{} `json:"payload" validate:"required"`
}

type FormatReportRequest struct {
	ForceRefresh bool `json:"force_refresh"`
}

type ReportResponse struct {
	Id        uuid.UUID              `json:"id"`
	UserId    uuid.UUID              `json:"user_id"`
	FileName  string                 `json:"file_name"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type ReportUsageResponse struct {
	UsedThisMonth int `json:"used_this_month"`
	MonthlyLimit  int `json:"monthly_limit"`
	Remaining     int `json:"remaining"`
}
