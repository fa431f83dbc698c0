package contract

import (
	"context"

	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/repository/specification"
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation *entity.Invitation) error
	Update(ctx context.Context, invitation *entity.Invitation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invitation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invitation, error)
}
