package postgres

import (
	"gorm.io/gorm"

	reportDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/report"
	reportlogDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/reportlog"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/reportlog"
)

// ReportLogRepository implements reportlog.Repository using GORM.
type ReportLogRepository struct {
	db *gorm.DB
}

func NewReportLogRepository(db *gorm.DB) reportlog.Repository {
	return &ReportLogRepository{db: db}
}

func (r *ReportLogRepository) List(opts reportlog.ListOptions) ([]*reportlogDatamodel.ReportLog, int64, error) {
	query := r.db.Model(&reportlogDatamodel.ReportLog{})

	if opts.AssigneeID != nil {
		// Scoped by report, not by row author: the current assignee sees the
		// report's whole history, including entries written before a handover.
		query = query.
			Joins("JOIN reports ON reports.id = report_logs.report_id").
			Where("reports.assignee_id = ?", *opts.AssigneeID)
	}
	if opts.ReportID != nil {
		query = query.Where("report_logs.report_id = ?", *opts.ReportID)
	}
	if opts.Filters.Date != "" {
		query = query.Where("DATE(report_logs.created_at) = ?", opts.Filters.Date)
	}
	if opts.Filters.Status != "" {
		query = query.Where("report_logs.status = ?", opts.Filters.Status)
	}
	if opts.Filters.CategoryName != "" {
		query = query.
			Joins("JOIN report_categories ON report_categories.id = report_logs.category_id").
			Where("report_categories.name = ?", opts.Filters.CategoryName)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []*reportlogDatamodel.ReportLog
	err := query.
		Preload("Category").
		Preload("Assignee").
		Order("report_logs.created_at DESC").
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func (r *ReportLogRepository) ReportsMissingHistory(assigneeID int64) ([]*reportDatamodel.Report, error) {
	var reports []*reportDatamodel.Report
	err := r.db.
		Where("assignee_id = ?", assigneeID).
		Where("NOT EXISTS (SELECT 1 FROM report_logs WHERE report_logs.report_id = reports.id)").
		Find(&reports).Error
	return reports, err
}

func (r *ReportLogRepository) CreateAll(rows []*reportlogDatamodel.ReportLog) error {
	return r.db.Create(rows).Error
}
