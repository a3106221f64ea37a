package service

import (
	"context"
	"fmt"

	"github.com/campusgo/admin-backend/internal/dto"
	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/moderation"
	"github.com/campusgo/admin-backend/internal/repository"
	"github.com/google/uuid"
)

type ReportService interface {
	ListReports(ctx context.Context, query dto.ReportFilterQuery) ([]*dto.ReportResponse, int64, error)
	GetReport(ctx context.Context, id uuid.UUID) (*dto.ReportResponse, error)
	ResolveReport(ctx context.Context, id uuid.UUID, adminNote string) error
	DismissReport(ctx context.Context, id uuid.UUID, adminNote string) error
	ResolveReportsByPostID(ctx context.Context, postID uuid.UUID) (int64, error)
	ResolveReportsByPostIDs(ctx context.Context, postIDs []uuid.UUID) (int64, error)
}

type reportService struct {
	reportRepo      repository.ReportRepository
	postRepo        repository.PostRepository
	configSvc       ConfigService
	notificationSvc NotificationService
}

func NewReportService(
	reportRepo repository.ReportRepository,
	postRepo repository.PostRepository,
	configSvc ConfigService,
	notificationSvc NotificationService,
) ReportService {
	return &reportService{
		reportRepo:      reportRepo,
		postRepo:        postRepo,
		configSvc:       configSvc,
		notificationSvc: notificationSvc,
	}
}

func (s *reportService) ListReports(ctx context.Context, query dto.ReportFilterQuery) ([]*dto.ReportResponse, int64, error) {
	cfg, err := s.configSvc.Get(ctx)
	if err != nil {
		return nil, 0, err
	}

	reports, total, err := s.reportRepo.FindAll(ctx, query.Status, query.Offset(), query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}

	responses := make([]*dto.ReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, s.toResponse(ctx, r, cfg))
	}
	return responses, total, nil
}

func (s *reportService) GetReport(ctx context.Context, id uuid.UUID) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "report")
	}

	cfg, err := s.configSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, report, cfg), nil
}

func (s *reportService) ResolveReport(ctx context.Context, id uuid.UUID, adminNote string) error {
	if err := s.reportRepo.UpdateStatus(ctx, id, model.ReportStatusResolved, adminNote); err != nil {
		return wrapNotFound(err, "report")
	}
	s.notificationSvc.PublishBellEvent(ctx, "report_resolved")
	return nil
}

func (s *reportService) DismissReport(ctx context.Context, id uuid.UUID, adminNote string) error {
	if err := s.reportRepo.UpdateStatus(ctx, id, model.ReportStatusDismissed, adminNote); err != nil {
		return wrapNotFound(err, "report")
	}
	s.notificationSvc.PublishBellEvent(ctx, "report_dismissed")
	return nil
}

// ResolveReportsByPostID is the single-post cascade used after a post is
// warned or removed. Best effort bulk update; partial failure leaves the
// remainder pending for the next pass.
func (s *reportService) ResolveReportsByPostID(ctx context.Context, postID uuid.UUID) (int64, error) {
	resolved, err := s.reportRepo.ResolveByPostID(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve reports for post %s: %w", postID, err)
	}
	if resolved > 0 {
		s.notificationSvc.PublishBellEvent(ctx, "reports_resolved")
	}
	return resolved, nil
}

func (s *reportService) ResolveReportsByPostIDs(ctx context.Context, postIDs []uuid.UUID) (int64, error) {
	resolved, err := s.reportRepo.ResolveByPostIDs(ctx, postIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve reports for %d posts: %w", len(postIDs), err)
	}
	if resolved > 0 {
		s.notificationSvc.PublishBellEvent(ctx, "reports_resolved")
	}
	return resolved, nil
}

func (s *reportService) toResponse(ctx context.Context, r *model.Report, cfg *model.AdminConfig) *dto.ReportResponse {
	severity := moderation.SeverityNormal
	if r.Post != nil {
		severity = moderation.SeverityOf(r.Post.ReportCount, cfg.ReportThresholds)
	} else if post, err := s.postRepo.FindByID(ctx, r.PostID); err == nil {
		severity = moderation.SeverityOf(post.ReportCount, cfg.ReportThresholds)
	}

	return &dto.ReportResponse{
		Report:       r,
		PostSeverity: severity,
	}
}
