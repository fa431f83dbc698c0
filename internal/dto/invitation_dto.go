// FILE: internal/dto/invitation_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProcessInvitationRequest struct {
	Token string `json:"token" validate:"required"`
}

type ProcessInvitationResponse struct {
	Success         bool   `json:"success"`
	AlreadyEnrolled bool   `json:"already_enrolled"`
	PlanSlug        string `json:"plan_slug"`
	Message         string `json:"message"`
}

type CreateLeadUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=3"`
	PlanSlug string `json:"plan_slug" validate:"required,oneof=basic pro vip"`
}

type CreateLeadUserResponse struct {
	UserId         uuid.UUID `json:"user_id"`
	SubscriptionId uuid.UUID `json:"subscription_id"`
	InvitationId   uuid.UUID `json:"invitation_id"`
	ExpiresAt      time.Time `json:"expires_at"`
}
