package feedback

import (
	"log/slog"

	apperrors "github.com/SenszZ00/cybersafelara1-sub000/internal"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/core/common/pagination"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/core/common/validation"
	feedbackDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/feedback"
)

const maxSubjectLength = 255

type SubmitFeedbackDTO struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

func (dto SubmitFeedbackDTO) Validate() *apperrors.AppError {
	v := validation.NewValidator()
	v.Field("subject", dto.Subject).Required().MaxLength(maxSubjectLength)
	v.Field("content", dto.Content).Required()
	return v.Validate()
}

type ListResponse struct {
	Feedback   []*feedbackDatamodel.Feedback `json:"feedback"`
	Pagination pagination.Pagination         `json:"pagination"`
}

type Repository interface {
	Create(f *feedbackDatamodel.Feedback) error
	GetByID(id int64) (*feedbackDatamodel.Feedback, error)
	List(limit, offset int) ([]*feedbackDatamodel.Feedback, int64, error)
}

// Service is the site feedback mailbox: any authenticated user can write to
// it, only admins read it.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Submit(userID int64, dto SubmitFeedbackDTO) (*feedbackDatamodel.Feedback, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	f := &feedbackDatamodel.Feedback{
		Subject: dto.Subject,
		Content: dto.Content,
		UserID:  userID,
	}

	if err := s.repo.Create(f); err != nil {
		s.logger.Error("failed to store feedback", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("feedback submitted", "feedback_id", f.ID, "user_id", userID)
	return f, nil
}

func (s *Service) Get(id int64) (*feedbackDatamodel.Feedback, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List(page int) (*ListResponse, error) {
	perPage := pagination.AdminPageSize
	items, total, err := s.repo.List(perPage, pagination.OffsetFor(page, perPage))
	if err != nil {
		s.logger.Error("failed to list feedback", "error", err)
		return nil, err
	}

	return &ListResponse{
		Feedback:   items,
		Pagination: pagination.New(page, perPage, total),
	}, nil
}
