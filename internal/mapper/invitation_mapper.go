package mapper

import (
	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/model"
)

type InvitationMapper struct{}

func NewInvitationMapper() *InvitationMapper {
	return &InvitationMapper{}
}

func (m *InvitationMapper) ToEntity(i *model.Invitation) *entity.Invitation {
	if i == nil {
		return nil
	}
	return &entity.Invitation{
		Id:        i.Id,
		Email:     i.Email,
		PlanSlug:  i.PlanSlug,
		Token:     i.Token,
		Used:      i.Used,
		UsedBy:    i.UsedBy,
		ExpiresAt: i.ExpiresAt,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func (m *InvitationMapper) ToModel(i *entity.Invitation) *model.Invitation {
	if i == nil {
		return nil
	}
	return &model.Invitation{
		Id:        i.Id,
		Email:     i.Email,
		PlanSlug:  i.PlanSlug,
		Token:     i.Token,
		Used:      i.Used,
		UsedBy:    i.UsedBy,
		ExpiresAt: i.ExpiresAt,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
