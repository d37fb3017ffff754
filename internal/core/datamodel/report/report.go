package report

import (
	"time"

	categoryDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/category"
	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
)

// Well-known status names the workflow treats specially. The set is stored
// as rows so list filters can join on the name.
const (
	StatusPending     = "pending"
	StatusUnderReview = "under review"
	StatusResolved    = "resolved"
)

type ReportStatus struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (ReportStatus) TableName() string {
	return "report_statuses"
}

type Report struct {
	ID             int64                            `json:"id" gorm:"primaryKey"`
	ReporterID     *int64                           `json:"reporter_id" gorm:"column:reporter_id"`
	Reporter       *userDatamodel.User              `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
	CategoryID     int64                            `json:"category_id" gorm:"not null"`
	Category       *categoryDatamodel.ReportCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Description    string                           `json:"description" gorm:"type:text;not null"`
	Anonymous      bool                             `json:"anonymous" gorm:"not null;default:false"`
	IncidentDate   *time.Time                       `json:"incident_date,omitempty" gorm:"column:incident_date;type:date"`
	AttachmentPath *string                          `json:"attachment_path,omitempty" gorm:"column:attachment_path"`
	AttachmentName *string                          `json:"attachment_name,omitempty" gorm:"column:attachment_name"`
	AttachmentMIME *string                          `json:"attachment_mime,omitempty" gorm:"column:attachment_mime"`
	StatusID       int64                            `json:"status_id" gorm:"not null"`
	Status         *ReportStatus                    `json:"status,omitempty" gorm:"foreignKey:StatusID"`
	AssigneeID     *int64                           `json:"assignee_id" gorm:"column:assignee_id"`
	Assignee       *userDatamodel.User              `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
	CreatedAt      time.Time                        `json:"created_at"`
	UpdatedAt      time.Time                        `json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}
