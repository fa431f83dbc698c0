package mapper

import (
	"testing"
	"time"

	"eua-na-pratica-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestInvitationMapperRoundTrip(t *testing.T) {
	m := NewInvitationMapper()

	usedBy := uuid.New()
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	row := &model.Invitation{
		Id:        uuid.New(),
		Email:     "lead@example.com",
		PlanSlug:  "pro",
		Token:     "tok-123",
		Used:      true,
		UsedBy:    &usedBy,
		ExpiresAt: created.Add(14 * 24 * time.Hour),
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}

	ent := m.ToEntity(row)
	assert.Equal(t, row.Id, ent.Id)
	assert.Equal(t, row.UsedBy, ent.UsedBy)
	assert.Equal(t, row.UpdatedAt, ent.UpdatedAt)

	back := m.ToModel(ent)
	assert.Equal(t, row, back)

	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}
