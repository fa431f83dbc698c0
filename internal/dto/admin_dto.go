// FILE: internal/dto/admin_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- User Management ---

type AdminUserListRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
	Role   string `query:"role"`
	Status string `query:"status"`
}

// --- Gateway simulation ---

type SimulateGatewayCallbackRequest struct {
	SubscriptionId    uuid.UUID `json:"subscription_id" validate:"required"`
	TransactionStatus string    `json:"transaction_status" validate:"required,oneof=settlement capture deny cancel expire"`
}

type SimulateGatewayCallbackResponse struct {
	OrderId           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	Delivered         bool   `json:"delivered"`
	ResultingStatus   string `json:"resulting_status"`
}

// --- Dashboard ---

type DashboardResponse struct {
	TotalRevenue      float64        `json:"total_revenue"`
	ActiveSubscribers int            `json:"active_subscribers"`
	PastDueCount      int            `json:"past_due_count"`
	TotalUsers        int            `json:"total_users"`
	PendingUsers      int            `json:"pending_users"`
	BookingsByStatus  map[string]int `json:"bookings_by_status"`
	GeneratedAt       time.Time      `json:"generated_at"`
}

// --- Log reading ---

type AdminLogQueryRequest struct {
	Level  string `query:"level"`
	Module string `query:"module"`
	Limit  int    `query:"limit"`
}

type AdminLogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Module    string                 `json:"module"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
}
