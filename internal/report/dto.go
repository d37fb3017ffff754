package report

import (
	"time"

	apperrors "github.com/SenszZ00/cybersafelara1-sub000/internal"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/core/common/pagination"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/core/common/validation"
	reportlogDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/reportlog"
)

const maxDescriptionLength = 2000

type SubmitReportDTO struct {
	CategoryID   int64      `json:"category_id"`
	Description  string     `json:"description"`
	Anonymous    bool       `json:"anonymous"`
	IncidentDate *time.Time `json:"incident_date,omitempty"`
}

func (dto SubmitReportDTO) Validate() *apperrors.AppError {
	v := validation.NewValidator()
	v.Field("category_id", dto.CategoryID).Required()
	v.Field("description", dto.Description).Required().MaxLength(maxDescriptionLength)
	if dto.IncidentDate != nil {
		v.Field("incident_date", *dto.IncidentDate).NotFuture()
	}
	return v.Validate()
}

type AssignReportDTO struct {
	AssigneeID *int64 `json:"assignee_id"`
}

type TransitionStatusDTO struct {
	StatusID          int64  `json:"status_id"`
	ResolutionDetails string `json:"resolution_details,omitempty"`
}

func (dto TransitionStatusDTO) Validate() *apperrors.AppError {
	v := validation.NewValidator()
	v.Field("status_id", dto.StatusID).Required()
	v.Field("resolution_details", dto.ResolutionDetails).MaxLength(maxDescriptionLength)
	return v.Validate()
}

// Filters narrow list queries; absent fields leave the base query untouched
// and present ones combine with AND.
type Filters struct {
	Date         string `json:"date,omitempty"` // YYYY-MM-DD, matched against the creation date
	StatusName   string `json:"status,omitempty"`
	CategoryName string `json:"category,omitempty"`
}

type ListOptions struct {
	ReporterID *int64
	AssigneeID *int64
	Filters    Filters
	Limit      int
	Offset     int
}

type AssignResponse struct {
	Classification Classification `json:"classification"`
	Message        string         `json:"message"`
	Report         *View          `json:"report"`
}

type TransitionResponse struct {
	Report   *View                         `json:"report"`
	LogEntry *reportlogDatamodel.ReportLog `json:"log_entry"`
}

type ListResponse struct {
	Reports    []*View               `json:"reports"`
	Pagination pagination.Pagination `json:"pagination"`
}
