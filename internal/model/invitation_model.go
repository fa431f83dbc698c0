package model

import (
	"time"

	"github.com/google/uuid"
)

type Invitation struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string     `gorm:"type:varchar(255);not null;index"`
	PlanSlug  string     `gorm:"type:varchar(50);not null"`
	Token     string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Used      bool       `gorm:"default:false"`
	UsedBy    *uuid.UUID `gorm:"type:uuid"`
	ExpiresAt time.Time  `gorm:"not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}

func (Invitation) TableName() string {
	return "invitations"
}
