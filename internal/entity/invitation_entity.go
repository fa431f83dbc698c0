// FILE: internal/entity/invitation_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Invitation enrolls an invited email onto a plan when its token is
// redeemed. Created by the admin lead-provisioning flow.
type Invitation struct {
	Id        uuid.UUID
	Email     string
	PlanSlug  string
	Token     string
	Used      bool
	UsedBy    *uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
