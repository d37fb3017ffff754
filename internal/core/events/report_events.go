package events

import (
	"time"

	"github.com/google/uuid"
)

// Workflow event types. These are an observability side channel: the core
// does not depend on any subscriber for correctness.
const (
	ReportSubmitted     = "report.submitted"
	ReportAssigned      = "report.assigned"
	ReportStatusChanged = "report.status_changed"
	ReportDeleted       = "report.deleted"
	ArticleModerated    = "article.moderated"
)

func NewReportSubmittedEvent(reportID, reporterID int64, categoryName string, anonymous bool) BaseEvent {
	return newEvent(ReportSubmitted, map[string]interface{}{
		"report_id":   reportID,
		"reporter_id": reporterID,
		"category":    categoryName,
		"anonymous":   anonymous,
	})
}

func NewReportAssignedEvent(reportID int64, classification string, assigneeID *int64) BaseEvent {
	data := map[string]interface{}{
		"report_id":      reportID,
		"classification": classification,
	}
	if assigneeID != nil {
		data["assignee_id"] = *assigneeID
	}
	return newEvent(ReportAssigned, data)
}

func NewReportStatusChangedEvent(reportID, actorID int64, statusName string) BaseEvent {
	return newEvent(ReportStatusChanged, map[string]interface{}{
		"report_id": reportID,
		"actor_id":  actorID,
		"status":    statusName,
	})
}

func NewReportDeletedEvent(reportID, ownerID int64) BaseEvent {
	return newEvent(ReportDeleted, map[string]interface{}{
		"report_id": reportID,
		"owner_id":  ownerID,
	})
}

func NewArticleModeratedEvent(articleID, adminID int64, decision string) BaseEvent {
	return newEvent(ArticleModerated, map[string]interface{}{
		"article_id": articleID,
		"admin_id":   adminID,
		"decision":   decision,
	})
}

func newEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}
