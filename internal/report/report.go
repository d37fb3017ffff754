package report

import (
	"fmt"
	"time"

	reportDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/report"
	reportlogDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/reportlog"
	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
)

// Classification names the kind of assignee change an assignment operation
// performed. It drives both the audit entry and the caller-facing message.
type Classification string

const (
	ClassificationAssigned   Classification = "assigned"
	ClassificationReassigned Classification = "reassigned"
	ClassificationUnassigned Classification = "unassigned"
	ClassificationUnchanged  Classification = "unchanged"
)

// ClassifyAssignment decides what an assignee swap amounts to. Handing a
// report to the person who already holds it is deliberately classified as
// unchanged: no history row is written for it, matching the none-to-none
// case.
func ClassifyAssignment(prev, next *userDatamodel.User) Classification {
	switch {
	case prev == nil && next == nil:
		return ClassificationUnchanged
	case prev != nil && next != nil && prev.ID == next.ID:
		return ClassificationUnchanged
	case prev == nil:
		return ClassificationAssigned
	case next == nil:
		return ClassificationUnassigned
	default:
		return ClassificationReassigned
	}
}

// AssignmentLog builds the single audit row an assignment writes, or nil for
// an unchanged assignment. The status snapshot is always the literal
// "pending" name: assignment never advances workflow state.
func AssignmentLog(rep *reportDatamodel.Report, prev, next *userDatamodel.User, c Classification) *reportlogDatamodel.ReportLog {
	var details string
	var assigneeID *int64

	switch c {
	case ClassificationAssigned:
		details = fmt.Sprintf("Report %d assigned to %s", rep.ID, next.Username)
		assigneeID = &next.ID
	case ClassificationReassigned:
		details = fmt.Sprintf("Report %d reassigned from %s to %s", rep.ID, prev.Username, next.Username)
		assigneeID = &next.ID
	case ClassificationUnassigned:
		details = fmt.Sprintf("Report %d unassigned from %s", rep.ID, prev.Username)
	default:
		return nil
	}

	return &reportlogDatamodel.ReportLog{
		ReportID:          rep.ID,
		CategoryID:        rep.CategoryID,
		ResolutionDetails: &details,
		Status:            reportDatamodel.StatusPending,
		AssigneeID:        assigneeID,
	}
}

// TransitionLog builds the audit row for a status change. The caller's
// resolution text is used verbatim; when blank, a generated fallback keeps
// the history row self-describing. The assignee on the row is the acting IT
// user, not necessarily the report's current assignee.
func TransitionLog(rep *reportDatamodel.Report, status *reportDatamodel.ReportStatus, resolution string, actorID int64) *reportlogDatamodel.ReportLog {
	if resolution == "" {
		resolution = fmt.Sprintf("Status updated to %s", status.Name)
	}

	return &reportlogDatamodel.ReportLog{
		ReportID:          rep.ID,
		CategoryID:        rep.CategoryID,
		ResolutionDetails: &resolution,
		Status:            status.Name,
		AssigneeID:        &actorID,
	}
}

// View is the public-safe projection of a report. The reporter's username is
// withheld from everyone but the owner when the report is anonymous; the raw
// reporter id stays visible only to the owner and to admins, for audit.
type View struct {
	ID               int64      `json:"id"`
	ReporterID       *int64     `json:"reporter_id,omitempty"`
	ReporterUsername *string    `json:"reporter_username,omitempty"`
	CategoryID       int64      `json:"category_id"`
	CategoryName     string     `json:"category_name,omitempty"`
	Description      string     `json:"description"`
	Anonymous        bool       `json:"anonymous"`
	IncidentDate     *time.Time `json:"incident_date,omitempty"`
	AttachmentName   *string    `json:"attachment_name,omitempty"`
	AttachmentMIME   *string    `json:"attachment_mime,omitempty"`
	HasAttachment    bool       `json:"has_attachment"`
	StatusID         int64      `json:"status_id"`
	StatusName       string     `json:"status_name,omitempty"`
	AssigneeID       *int64     `json:"assignee_id,omitempty"`
	AssigneeUsername *string    `json:"assignee_username,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func NewView(rep *reportDatamodel.Report, viewer Viewer) *View {
	v := &View{
		ID:             rep.ID,
		ReporterID:     rep.ReporterID,
		CategoryID:     rep.CategoryID,
		Description:    rep.Description,
		Anonymous:      rep.Anonymous,
		IncidentDate:   rep.IncidentDate,
		AttachmentName: rep.AttachmentName,
		AttachmentMIME: rep.AttachmentMIME,
		HasAttachment:  rep.AttachmentPath != nil,
		StatusID:       rep.StatusID,
		AssigneeID:     rep.AssigneeID,
		CreatedAt:      rep.CreatedAt,
		UpdatedAt:      rep.UpdatedAt,
	}

	if rep.Category != nil {
		v.CategoryName = rep.Category.Name
	}
	if rep.Status != nil {
		v.StatusName = rep.Status.Name
	}
	if rep.Assignee != nil {
		v.AssigneeUsername = &rep.Assignee.Username
	}

	isOwner := rep.ReporterID != nil && *rep.ReporterID == viewer.ID
	isAdmin := viewer.Role == userDatamodel.RoleAdmin
	if rep.Reporter != nil && (!rep.Anonymous || isOwner) {
		v.ReporterUsername = &rep.Reporter.Username
	}
	if rep.Anonymous && !isOwner && !isAdmin {
		v.ReporterID = nil
	}

	return v
}

func NewViews(reports []*reportDatamodel.Report, viewer Viewer) []*View {
	views := make([]*View, len(reports))
	for i, rep := range reports {
		views[i] = NewView(rep, viewer)
	}
	return views
}
