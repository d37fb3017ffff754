package article

import (
	"time"

	categoryDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/category"
	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Article is an awareness post. Only approved articles are visible in the
// public feed; pending and rejected ones show up solely in the owner's
// "my articles" view and the admin moderation queue.
type Article struct {
	ID         int64                             `json:"id" gorm:"primaryKey"`
	Title      string                            `json:"title" gorm:"not null"`
	Content    string                            `json:"content" gorm:"type:text;not null"`
	Keyword    *string                           `json:"keyword,omitempty"`
	UserID     *int64                            `json:"user_id" gorm:"column:user_id"`
	User       *userDatamodel.User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CategoryID *int64                            `json:"category_id" gorm:"column:category_id"`
	Category   *categoryDatamodel.ReportCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Status     string                            `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt  time.Time                         `json:"created_at"`
	UpdatedAt  time.Time                         `json:"updated_at"`
}

func (Article) TableName() string {
	return "articles"
}
