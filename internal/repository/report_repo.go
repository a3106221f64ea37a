package repository

import (
	"context"

	"github.com/campusgo/admin-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error)
	FindAll(ctx context.Context, status string, offset, limit int) ([]*model.Report, int64, error)
	FindPendingByPostID(ctx context.Context, postID uuid.UUID) ([]*model.Report, error)
	ResolveByPostID(ctx context.Context, postID uuid.UUID) (int64, error)
	ResolveByPostIDs(ctx context.Context, postIDs []uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReportStatus, adminNote string) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).
		Preload("Post").
		Where("id = ?", id).
		First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindAll(ctx context.Context, status string, offset, limit int) ([]*model.Report, int64, error) {
	var reports []*model.Report
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("report_date DESC").Offset(offset).Limit(limit).Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (r *reportRepository) FindPendingByPostID(ctx context.Context, postID uuid.UUID) ([]*model.Report, error) {
	var reports []*model.Report
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND status = ?", postID, model.ReportStatusPending).
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) ResolveByPostID(ctx context.Context, postID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Report{}).
		Where("post_id = ? AND status = ?", postID, model.ReportStatusPending).
		Update("status", model.ReportStatusResolved)
	return res.RowsAffected, res.Error
}

func (r *reportRepository) ResolveByPostIDs(ctx context.Context, postIDs []uuid.UUID) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&model.Report{}).
		Where("post_id IN ? AND status = ?", postIDs, model.ReportStatusPending).
		Update("status", model.ReportStatusResolved)
	return res.RowsAffected, res.Error
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReportStatus, adminNote string) error {
	updates := map[string]interface{}{"status": status}
	if adminNote != "" {
		updates["admin_note"] = adminNote
	}
	res := r.db.WithContext(ctx).Model(&model.Report{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
