package feedback

import (
	"time"

	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
)

// Feedback is a user-submitted message. It is a read-only mailbox for
// administrators; entries carry no status.
type Feedback struct {
	ID        int64               `json:"id" gorm:"primaryKey"`
	Subject   string              `json:"subject" gorm:"not null"`
	Content   string              `json:"content" gorm:"type:text;not null"`
	UserID    int64               `json:"user_id" gorm:"not null"`
	User      *userDatamodel.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time           `json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
