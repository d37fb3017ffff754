package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/SenszZ00/cybersafelara1-sub000/internal"
	categoryDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/category"
	reportDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/report"
	reportlogDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/reportlog"
	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/report"
)

// ReportRepository implements report.Repository using GORM.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.Repository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(rep *reportDatamodel.Report) error {
	return r.db.Create(rep).Error
}

func (r *ReportRepository) GetByID(id int64) (*reportDatamodel.Report, error) {
	var rep reportDatamodel.Report
	err := r.db.
		Preload("Category").
		Preload("Status").
		Preload("Reporter").
		Preload("Assignee").
		Where("id = ?", id).
		First(&rep).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, err
	}
	return &rep, nil
}

// List applies the viewer scope and optional filters, returning one page of
// reports plus the unpaged total.
func (r *ReportRepository) List(opts report.ListOptions) ([]*reportDatamodel.Report, int64, error) {
	query := r.db.Model(&reportDatamodel.Report{})

	if opts.ReporterID != nil {
		query = query.Where("reports.reporter_id = ?", *opts.ReporterID)
	}
	if opts.AssigneeID != nil {
		query = query.Where("reports.assignee_id = ?", *opts.AssigneeID)
	}
	if opts.Filters.Date != "" {
		query = query.Where("DATE(reports.created_at) = ?", opts.Filters.Date)
	}
	if opts.Filters.StatusName != "" {
		query = query.
			Joins("JOIN report_statuses ON report_statuses.id = reports.status_id").
			Where("report_statuses.name = ?", opts.Filters.StatusName)
	}
	if opts.Filters.CategoryName != "" {
		query = query.
			Joins("JOIN report_categories ON report_categories.id = reports.category_id").
			Where("report_categories.name = ?", opts.Filters.CategoryName)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []*reportDatamodel.Report
	err := query.
		Preload("Category").
		Preload("Status").
		Preload("Reporter").
		Preload("Assignee").
		Order("reports.created_at DESC").
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// Delete removes a report together with its audit rows.
func (r *ReportRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&reportlogDatamodel.ReportLog{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&reportDatamodel.Report{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrReportNotFound
		}
		return nil
	})
}

func (r *ReportRepository) GetCategoryByID(id int64) (*categoryDatamodel.ReportCategory, error) {
	var cat categoryDatamodel.ReportCategory
	err := r.db.Where("id = ?", id).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *ReportRepository) GetStatusByID(id int64) (*reportDatamodel.ReportStatus, error) {
	var status reportDatamodel.ReportStatus
	err := r.db.Where("id = ?", id).First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

func (r *ReportRepository) GetStatusByName(name string) (*reportDatamodel.ReportStatus, error) {
	var status reportDatamodel.ReportStatus
	err := r.db.Where("name = ?", name).First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

// Assign updates the assignee and appends the audit row makeLog produces,
// in one transaction. The report row is locked for the duration so two
// concurrent assignments cannot interleave. A nil row from makeLog means the
// assignee did not change and only the write-through happens.
func (r *ReportRepository) Assign(reportID int64, next *userDatamodel.User, makeLog func(rep *reportDatamodel.Report, prev *userDatamodel.User) *reportlogDatamodel.ReportLog) (*reportDatamodel.Report, error) {
	var result *reportDatamodel.Report

	err := r.db.Transaction(func(tx *gorm.DB) error {
		rep, err := lockReport(tx, reportID)
		if err != nil {
			return err
		}

		var prev *userDatamodel.User
		if rep.AssigneeID != nil {
			var u userDatamodel.User
			if err := tx.Where("id = ?", *rep.AssigneeID).First(&u).Error; err == nil {
				prev = &u
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		var nextID *int64
		if next != nil {
			nextID = &next.ID
		}
		if err := tx.Model(rep).Update("assignee_id", nextID).Error; err != nil {
			return err
		}

		if logRow := makeLog(rep, prev); logRow != nil {
			if err := tx.Create(logRow).Error; err != nil {
				return err
			}
		}

		result, err = reloadReport(tx, reportID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus moves the report to the given status and appends the audit
// row from makeLog in the same transaction.
func (r *ReportRepository) UpdateStatus(reportID int64, status *reportDatamodel.ReportStatus, makeLog func(rep *reportDatamodel.Report) *reportlogDatamodel.ReportLog) (*reportDatamodel.Report, *reportlogDatamodel.ReportLog, error) {
	var (
		result *reportDatamodel.Report
		logRow *reportlogDatamodel.ReportLog
	)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		rep, err := lockReport(tx, reportID)
		if err != nil {
			return err
		}

		if err := tx.Model(rep).Update("status_id", status.ID).Error; err != nil {
			return err
		}

		logRow = makeLog(rep)
		if err := tx.Create(logRow).Error; err != nil {
			return err
		}

		result, err = reloadReport(tx, reportID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return result, logRow, nil
}

// lockReport reads the report row under SELECT ... FOR UPDATE. The lock
// clause is skipped on dialects that do not support it (sqlite in tests).
func lockReport(tx *gorm.DB, reportID int64) (*reportDatamodel.Report, error) {
	query := tx.Model(&reportDatamodel.Report{})
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rep reportDatamodel.Report
	err := query.Where("id = ?", reportID).First(&rep).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func reloadReport(tx *gorm.DB, reportID int64) (*reportDatamodel.Report, error) {
	var rep reportDatamodel.Report
	err := tx.
		Preload("Category").
		Preload("Status").
		Preload("Reporter").
		Preload("Assignee").
		Where("id = ?", reportID).
		First(&rep).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
