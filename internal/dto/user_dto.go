// FILE: internal/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	Phone       *string   `json:"phone,omitempty"`
	City        *string   `json:"city,omitempty"`
	State       *string   `json:"state,omitempty"`
	Country     *string   `json:"country,omitempty"`
	LinkedinURL *string   `json:"linkedin_url,omitempty"`
	CurrentRole *string   `json:"current_role,omitempty"`
	TargetRole  *string   `json:"target_role,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName    string  `json:"full_name" validate:"omitempty,min=3"`
	Phone       *string `json:"phone"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Country     *string `json:"country"`
	LinkedinURL *string `json:"linkedin_url" validate:"omitempty,url"`
	CurrentRole *string `json:"current_role"`
	TargetRole  *string `json:"target_role"`
	AvatarURL   *string `json:"avatar_url" validate:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// --- Admin user management ---

type AdminUserListResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	PlanSlug  string    `json:"plan_slug,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminUpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active inactive"`
}
