package category

import "time"

// ReportCategory is a taxonomy entry reports and articles reference.
// Names are unique across the set.
type ReportCategory struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReportCategory) TableName() string {
	return "report_categories"
}
