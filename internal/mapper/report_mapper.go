package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/model"
)

type ReportMapper struct{}

func NewReportMapper() *ReportMapper {
	return &ReportMapper{}
}

func (m *ReportMapper) ToEntity(r *model.ResumeReport) *entity.ResumeReport {
	if r == nil {
		return nil
	}
	payload := map[string]interface{}{}
	if len(r.Payload) > 0 {
		// A payload that fails to decode is treated as empty rather than
		// poisoning the whole read path.
		_ = json.Unmarshal(r.Payload, &payload)
	}
	return &entity.ResumeReport{
		Id:        r.Id,
		UserId:    r.UserId,
		FileName:  r.FileName,
		Payload:   payload,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (m *ReportMapper) ToModel(r *entity.ResumeReport) *model.ResumeReport {
	if r == nil {
		return nil
	}
	var payload datatypes.JSON
	if r.Payload != nil {
		if raw, err := json.Marshal(r.Payload); err == nil {
			payload = datatypes.JSON(raw)
		}
	}
	return &model.ResumeReport{
		Id:        r.Id,
		UserId:    r.UserId,
		FileName:  r.FileName,
		Payload:   payload,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
