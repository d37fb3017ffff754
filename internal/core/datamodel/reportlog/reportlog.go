package reportlog

import (
	"time"

	categoryDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/category"
	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
)

// ReportLog is one audit entry against a report. Rows are append-only;
// nothing in the application updates or deletes them.
//
// Status is a plain string snapshot of the status name at the moment of the
// event, deliberately not a foreign key: renaming a status row later must not
// rewrite history. Category is captured the same way, as the report's
// category at event time.
type ReportLog struct {
	ID                int64                             `json:"id" gorm:"primaryKey"`
	ReportID          int64                             `json:"report_id" gorm:"not null;index"`
	CategoryID        int64                             `json:"category_id" gorm:"not null"`
	Category          *categoryDatamodel.ReportCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ResolutionDetails *string                           `json:"resolution_details,omitempty" gorm:"column:resolution_details;type:text"`
	Status            string                            `json:"status" gorm:"not null"`
	AssigneeID        *int64                            `json:"assignee_id" gorm:"column:assignee_id"`
	Assignee          *userDatamodel.User               `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
	CreatedAt         time.Time                         `json:"created_at"`
}

func (ReportLog) TableName() string {
	return "report_logs"
}
