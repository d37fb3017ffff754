package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/SenszZ00/cybersafelara1-sub000/internal"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/core/common/pagination"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/core/events"
	categoryDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/category"
	reportDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/report"
	reportlogDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/reportlog"
	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/storage"
)

// Repository is the data access contract for reports. Assign and
// UpdateStatus are atomic: the entity mutation and the audit row produced by
// makeLog commit together or not at all.
type Repository interface {
	Create(rep *reportDatamodel.Report) error
	GetByID(id int64) (*reportDatamodel.Report, error)
	List(opts ListOptions) ([]*reportDatamodel.Report, int64, error)
	Delete(id int64) error
	GetCategoryByID(id int64) (*categoryDatamodel.ReportCategory, error)
	GetStatusByID(id int64) (*reportDatamodel.ReportStatus, error)
	GetStatusByName(name string) (*reportDatamodel.ReportStatus, error)
	Assign(reportID int64, next *userDatamodel.User, makeLog func(rep *reportDatamodel.Report, prev *userDatamodel.User) *reportlogDatamodel.ReportLog) (*reportDatamodel.Report, error)
	UpdateStatus(reportID int64, status *reportDatamodel.ReportStatus, makeLog func(rep *reportDatamodel.Report) *reportlogDatamodel.ReportLog) (*reportDatamodel.Report, *reportlogDatamodel.ReportLog, error)
}

// UserDirectory resolves user ids for assignee validation.
type UserDirectory interface {
	GetByID(id int64) (*userDatamodel.User, error)
}

// Viewer identifies the acting user for role-scoped reads.
type Viewer struct {
	ID   int64
	Role userDatamodel.Role
}

type Service struct {
	repo   Repository
	users  UserDirectory
	blobs  storage.BlobStore
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, users UserDirectory, blobs storage.BlobStore, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		blobs:  blobs,
		bus:    bus,
		logger: logger,
	}
}

// Submit creates a new report in the pending state with no assignee.
// The attachment, when present, is validated and stored before the row is
// written so a failed upload never leaves a dangling reference.
func (s *Service) Submit(reporterID int64, dto SubmitReportDTO, attachment *storage.Object) (*View, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("report validation failed", "error", err, "reporter_id", reporterID)
		return nil, err
	}

	cat, err := s.repo.GetCategoryByID(dto.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperrors.NewValidationFieldError("category_id", "category does not exist", apperrors.ErrCodeInvalidCategory)
	}

	pending, err := s.repo.GetStatusByName(reportDatamodel.StatusPending)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, apperrors.NewInternalError("pending status is not seeded", nil)
	}

	rep := &reportDatamodel.Report{
		ReporterID:   &reporterID,
		CategoryID:   cat.ID,
		Description:  dto.Description,
		Anonymous:    dto.Anonymous,
		IncidentDate: dto.IncidentDate,
		StatusID:     pending.ID,
	}

	if attachment != nil {
		if appErr := storage.ValidateAttachment(attachment.Name, attachment.Size); appErr != nil {
			return nil, appErr
		}
		path, err := s.blobs.Put(context.Background(), *attachment)
		if err != nil {
			s.logger.Error("attachment upload failed", "error", err, "reporter_id", reporterID)
			return nil, apperrors.NewInternalError("failed to store attachment", err)
		}
		rep.AttachmentPath = &path
		rep.AttachmentName = &attachment.Name
		rep.AttachmentMIME = &attachment.ContentType
	}

	if err := s.repo.Create(rep); err != nil {
		s.logger.Error("failed to create report", "error", err, "reporter_id", reporterID)
		return nil, err
	}

	s.bus.Publish(context.Background(), events.NewReportSubmittedEvent(rep.ID, reporterID, cat.Name, rep.Anonymous))

	s.logger.Info("report submitted",
		"report_id", rep.ID,
		"reporter_id", reporterID,
		"category", cat.Name,
		"anonymous", rep.Anonymous)

	rep.Category = cat
	rep.Status = pending
	return NewView(rep, Viewer{ID: reporterID, Role: userDatamodel.RoleUser}), nil
}

// Get returns one report for a viewer who owns it, is assigned to it, or is
// an administrator.
func (s *Service) Get(viewer Viewer, reportID int64) (*View, error) {
	rep, err := s.repo.GetByID(reportID)
	if err != nil {
		return nil, err
	}

	if !s.canAccess(viewer, rep) {
		s.logger.Warn("unauthorized report access", "report_id", reportID, "viewer_id", viewer.ID, "viewer_role", viewer.Role)
		return nil, apperrors.ErrUnauthorizedAccess
	}

	return NewView(rep, viewer), nil
}

func (s *Service) canAccess(viewer Viewer, rep *reportDatamodel.Report) bool {
	switch viewer.Role {
	case userDatamodel.RoleAdmin:
		return true
	case userDatamodel.RoleIT:
		return rep.AssigneeID != nil && *rep.AssigneeID == viewer.ID
	default:
		return rep.ReporterID != nil && *rep.ReporterID == viewer.ID
	}
}

// List returns the viewer's role-scoped page of reports: admins see all,
// IT personnel their assigned queue, regular users their own submissions.
func (s *Service) List(viewer Viewer, filters Filters, page int) (*ListResponse, error) {
	perPage := pagination.PersonalPageSize
	opts := ListOptions{Filters: filters}

	switch viewer.Role {
	case userDatamodel.RoleAdmin:
		perPage = pagination.AdminPageSize
	case userDatamodel.RoleIT:
		opts.AssigneeID = &viewer.ID
	default:
		opts.ReporterID = &viewer.ID
	}

	opts.Limit = perPage
	opts.Offset = pagination.OffsetFor(page, perPage)

	reports, total, err := s.repo.List(opts)
	if err != nil {
		s.logger.Error("failed to list reports", "error", err, "viewer_id", viewer.ID)
		return nil, err
	}

	return &ListResponse{
		Reports:    NewViews(reports, viewer),
		Pagination: pagination.New(page, perPage, total),
	}, nil
}

// Assign binds, rebinds or clears a report's assignee and appends the
// matching audit row in the same transaction. The target must be an existing
// IT personnel account.
func (s *Service) Assign(adminID, reportID int64, assigneeID *int64) (*AssignResponse, error) {
	var next *userDatamodel.User
	if assigneeID != nil {
		u, err := s.users.GetByID(*assigneeID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, apperrors.ErrAssigneeNotFound
		}
		if u.Role != userDatamodel.RoleIT {
			s.logger.Warn("assignment rejected: target is not IT personnel",
				"report_id", reportID,
				"assignee_id", *assigneeID,
				"assignee_role", u.Role)
			return nil, apperrors.ErrAssigneeNotIT
		}
		next = u
	}

	var classification Classification
	rep, err := s.repo.Assign(reportID, next, func(rep *reportDatamodel.Report, prev *userDatamodel.User) *reportlogDatamodel.ReportLog {
		classification = ClassifyAssignment(prev, next)
		return AssignmentLog(rep, prev, next, classification)
	})
	if err != nil {
		s.logger.Error("assignment failed", "error", err, "report_id", reportID, "admin_id", adminID)
		return nil, err
	}

	s.bus.Publish(context.Background(), events.NewReportAssignedEvent(reportID, string(classification), assigneeID))

	s.logger.Info("report assignment applied",
		"report_id", reportID,
		"admin_id", adminID,
		"classification", classification)

	return &AssignResponse{
		Classification: classification,
		Message:        assignmentMessage(classification, rep, next),
		Report:         NewView(rep, Viewer{ID: adminID, Role: userDatamodel.RoleAdmin}),
	}, nil
}

func assignmentMessage(c Classification, rep *reportDatamodel.Report, next *userDatamodel.User) string {
	switch c {
	case ClassificationAssigned:
		return fmt.Sprintf("Report %d assigned to %s", rep.ID, next.Username)
	case ClassificationReassigned:
		return fmt.Sprintf("Report %d reassigned to %s", rep.ID, next.Username)
	case ClassificationUnassigned:
		return fmt.Sprintf("Report %d unassigned", rep.ID)
	default:
		return "Assignee unchanged"
	}
}

// Transition moves a report to a new status and appends the audit row with
// the status name snapshot, atomically.
func (s *Service) Transition(actorID, reportID int64, dto TransitionStatusDTO) (*TransitionResponse, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	status, err := s.repo.GetStatusByID(dto.StatusID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, apperrors.ErrStatusNotFound
	}

	rep, logEntry, err := s.repo.UpdateStatus(reportID, status, func(rep *reportDatamodel.Report) *reportlogDatamodel.ReportLog {
		return TransitionLog(rep, status, dto.ResolutionDetails, actorID)
	})
	if err != nil {
		s.logger.Error("status transition failed", "error", err, "report_id", reportID, "actor_id", actorID)
		return nil, err
	}

	s.bus.Publish(context.Background(), events.NewReportStatusChangedEvent(reportID, actorID, status.Name))

	s.logger.Info("report status changed",
		"report_id", reportID,
		"actor_id", actorID,
		"status", status.Name)

	return &TransitionResponse{
		Report:   NewView(rep, Viewer{ID: actorID, Role: userDatamodel.RoleIT}),
		LogEntry: logEntry,
	}, nil
}

// Delete removes a report. Only the owner may do this; the attachment blob
// is removed best-effort after the row is gone.
func (s *Service) Delete(ownerID, reportID int64) error {
	rep, err := s.repo.GetByID(reportID)
	if err != nil {
		return err
	}

	if rep.ReporterID == nil || *rep.ReporterID != ownerID {
		return apperrors.ErrUnauthorizedAccess
	}

	if err := s.repo.Delete(reportID); err != nil {
		s.logger.Error("failed to delete report", "error", err, "report_id", reportID)
		return err
	}

	if rep.AttachmentPath != nil {
		if err := s.blobs.Remove(context.Background(), *rep.AttachmentPath); err != nil {
			s.logger.Warn("failed to remove attachment blob", "error", err, "report_id", reportID)
		}
	}

	s.bus.Publish(context.Background(), events.NewReportDeletedEvent(reportID, ownerID))
	s.logger.Info("report deleted", "report_id", reportID, "owner_id", ownerID)
	return nil
}

// AttachmentURL returns a short-lived download link for a report's
// attachment, subject to the same access rules as the report itself.
func (s *Service) AttachmentURL(viewer Viewer, reportID int64) (string, error) {
	rep, err := s.repo.GetByID(reportID)
	if err != nil {
		return "", err
	}

	if !s.canAccess(viewer, rep) {
		return "", apperrors.ErrUnauthorizedAccess
	}

	if rep.AttachmentPath == nil {
		return "", apperrors.NewNotFoundError("Report has no attachment", apperrors.ErrCodeReportNotFound)
	}

	url, err := s.blobs.PresignedGetURL(context.Background(), *rep.AttachmentPath, 15*time.Minute)
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign attachment URL", err)
	}
	return url, nil
}
