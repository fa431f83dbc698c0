// FILE: internal/service/report_service.go
package service

import (
	"context"
	"errors"
	"time"

	"eua-na-pratica-be/internal/constant"
	"eua-na-pratica-be/internal/dto"
	"eua-na-pratica-be/internal/entity"
	"eua-na-pratica-be/internal/pkg/logger"
	"eua-na-pratica-be/internal/repository/specification"
	"eua-na-pratica-be/internal/repository/unitofwork"
	"eua-na-pratica-be/pkg/report"

	"github.com/google/uuid"
)

var ErrReportNotFound = errors.New(constant.MsgResourceNotFound)

type IReportService interface {
	// CreateReport stores a new analysis payload, consuming one unit of
	// the monthly resume-analysis quota.
	CreateReport(ctx context.Context, userId uuid.UUID, req *dto.CreateReportRequest) (*dto.ReportResponse, error)
	// FormatReport returns the report rendered in the current document
	// schema, rebuilding legacy payloads on read.
	FormatReport(ctx context.Context, userId, reportId uuid.UUID, req *dto.FormatReportRequest) (*dto.ReportResponse, error)
	ListReports(ctx context.Context, userId uuid.UUID) ([]*dto.ReportResponse, error)
	GetUsage(ctx context.Context, userId uuid.UUID) (*dto.ReportUsageResponse, error)
}

type reportService struct {
	uowFactory   unitofwork.RepositoryFactory
	entitlements IEntitlementService
	logger       logger.ILogger
	now          func() time.Time
}

func NewReportService(uowFactory unitofwork.RepositoryFactory, entitlements IEntitlementService, log logger.ILogger) IReportService {
	return &reportService{
		uowFactory:   uowFactory,
		entitlements: entitlements,
		logger:       log,
		now:          time.Now,
	}
}

func reportToResponse(r *entity.ResumeReport) *dto.ReportResponse {
	return &dto.ReportResponse{
		Id:        r.Id,
		UserId:    r.UserId,
		FileName:  r.FileName,
		Payload:   r.Payload,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (s *reportService) CreateReport(ctx context.Context, userId uuid.UUID, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	if err := s.entitlements.ConsumeUsage(ctx, userId, entity.MeterResumeAnalyses); err != nil {
		return nil, err
	}

	now := s.now()
	payload, _ := report.Format(req.Payload, false, now)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rep := &entity.ResumeReport{
		Id:       uuid.New(),
		UserId:   userId,
		FileName: req.FileName,
		Payload:  payload,
	}
	if err := uow.ReportRepository().Create(ctx, rep); err != nil {
		return nil, err
	}

	s.logger.Info("REPORT", "Report created", map[string]interface{}{
		"report_id": rep.Id.String(),
		"user_id":   userId.String(),
	})
	return reportToResponse(rep), nil
}

func (s *reportService) FormatReport(ctx context.Context, userId, reportId uuid.UUID, req *dto.FormatReportRequest) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rep, err := uow.ReportRepository().FindOne(ctx,
		specification.ByID{ID: reportId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrReportNotFound
	}

	formatted, changed := report.Format(rep.Payload, req.ForceRefresh, s.now())
	if changed {
		rep.Payload = formatted
		if err := uow.ReportRepository().Update(ctx, rep); err != nil {
			return nil, err
		}
	}

	return reportToResponse(rep), nil
}

func (s *reportService) ListReports(ctx context.Context, userId uuid.UUID) ([]*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	reports, err := uow.ReportRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ReportResponse, 0, len(reports))
	for _, r := range reports {
		result = append(result, reportToResponse(r))
	}
	return result, nil
}

func (s *reportService) GetUsage(ctx context.Context, userId uuid.UUID) (*dto.ReportUsageResponse, error) {
	ent := s.entitlements.Resolve(ctx, userId)
	return &dto.ReportUsageResponse{
		UsedThisMonth: ent.UsedThisMonth,
		MonthlyLimit:  ent.MonthlyLimit,
		Remaining:     ent.Remaining(),
	}, nil
}
