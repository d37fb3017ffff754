package reportlog

import (
	"log/slog"

	"github.com/SenszZ00/cybersafelara1-sub000/internal/core/common/pagination"
	reportDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/report"
	reportlogDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/reportlog"
	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
)

// backfillDetails is the synthesized history line for reports that were
// assigned before audit logging existed.
const backfillDetails = "Report assigned to IT personnel."

type Filters struct {
	Date         string
	Status       string
	CategoryName string
}

type ListOptions struct {
	// AssigneeID scopes to reports currently assigned to this user. Rows
	// written by a previous assignee still match.
	AssigneeID *int64
	ReportID   *int64
	Filters    Filters
	Limit      int
	Offset     int
}

type ListResponse struct {
	Logs       []*reportlogDatamodel.ReportLog `json:"logs"`
	Pagination pagination.Pagination           `json:"pagination"`
}

type Repository interface {
	List(opts ListOptions) ([]*reportlogDatamodel.ReportLog, int64, error)
	// ReportsMissingHistory returns the assignee's reports that have no
	// audit rows at all.
	ReportsMissingHistory(assigneeID int64) ([]*reportDatamodel.Report, error)
	CreateAll(rows []*reportlogDatamodel.ReportLog) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns one page of audit entries, newest first. Admins see every
// report's history; IT personnel see the history of their assigned reports,
// backfilled first so pre-logging assignments are not invisible.
func (s *Service) List(viewerID int64, role userDatamodel.Role, reportID *int64, filters Filters, page int) (*ListResponse, error) {
	opts := ListOptions{ReportID: reportID, Filters: filters}

	if role != userDatamodel.RoleAdmin {
		if err := s.EnsureAssignedHistory(viewerID); err != nil {
			return nil, err
		}
		opts.AssigneeID = &viewerID
	}

	perPage := pagination.AdminPageSize
	opts.Limit = perPage
	opts.Offset = pagination.OffsetFor(page, perPage)

	logs, total, err := s.repo.List(opts)
	if err != nil {
		s.logger.Error("failed to list report logs", "error", err, "viewer_id", viewerID)
		return nil, err
	}

	return &ListResponse{
		Logs:       logs,
		Pagination: pagination.New(page, perPage, total),
	}, nil
}

// EnsureAssignedHistory synthesizes an initial audit row for every report
// assigned to the viewer that has none. Keyed on "zero rows", so running it
// again is a no-op.
func (s *Service) EnsureAssignedHistory(assigneeID int64) error {
	reports, err := s.repo.ReportsMissingHistory(assigneeID)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		return nil
	}

	details := backfillDetails
	rows := make([]*reportlogDatamodel.ReportLog, 0, len(reports))
	for _, rep := range reports {
		id := assigneeID
		rows = append(rows, &reportlogDatamodel.ReportLog{
			ReportID:          rep.ID,
			CategoryID:        rep.CategoryID,
			ResolutionDetails: &details,
			Status:            reportDatamodel.StatusPending,
			AssigneeID:        &id,
		})
	}

	if err := s.repo.CreateAll(rows); err != nil {
		s.logger.Error("history backfill failed", "error", err, "assignee_id", assigneeID)
		return err
	}

	s.logger.Info("backfilled assignment history", "assignee_id", assigneeID, "rows", len(rows))
	return nil
}
