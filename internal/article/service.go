package article

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/SenszZ00/cybersafelara1-sub000/internal"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/core/common/pagination"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/core/events"
	articleDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/article"
	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
)

type Repository interface {
	Create(a *articleDatamodel.Article) error
	GetByID(id int64) (*articleDatamodel.Article, error)
	Update(a *articleDatamodel.Article) error
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
	List(opts ListOptions) ([]*articleDatamodel.Article, int64, error)
}

type Service struct {
	repo   Repository
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{repo: repo, bus: bus, logger: logger}
}

// Create stores a new article in the pending state. Nothing becomes publicly
// visible until an admin approves it.
func (s *Service) Create(userID int64, dto CreateArticleDTO) (*articleDatamodel.Article, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	a := &articleDatamodel.Article{
		Title:      dto.Title,
		Content:    dto.Content,
		Keyword:    dto.Keyword,
		UserID:     &userID,
		CategoryID: dto.CategoryID,
		Status:     articleDatamodel.StatusPending,
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create article", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("article submitted", "article_id", a.ID, "user_id", userID)
	return a, nil
}

// Get enforces feed visibility: approved articles are public, everything
// else is visible only to the owner and admins.
func (s *Service) Get(viewerID int64, role userDatamodel.Role, articleID int64) (*articleDatamodel.Article, error) {
	a, err := s.repo.GetByID(articleID)
	if err != nil {
		return nil, err
	}

	if a.Status != articleDatamodel.StatusApproved {
		isOwner := a.UserID != nil && *a.UserID == viewerID
		if !isOwner && role != userDatamodel.RoleAdmin {
			return nil, apperrors.ErrUnauthorizedAccess
		}
	}

	return a, nil
}

// Update replaces an article's editable fields. Only the owner may edit, and
// any edit sends the article back through moderation.
func (s *Service) Update(userID, articleID int64, dto UpdateArticleDTO) (*articleDatamodel.Article, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	a, err := s.repo.GetByID(articleID)
	if err != nil {
		return nil, err
	}
	if a.UserID == nil || *a.UserID != userID {
		return nil, apperrors.ErrUnauthorizedAccess
	}

	a.Title = dto.Title
	a.Content = dto.Content
	a.Keyword = dto.Keyword
	a.CategoryID = dto.CategoryID
	a.Status = articleDatamodel.StatusPending

	if err := s.repo.Update(a); err != nil {
		s.logger.Error("failed to update article", "error", err, "article_id", articleID)
		return nil, err
	}

	return a, nil
}

func (s *Service) Delete(userID, articleID int64, role userDatamodel.Role) error {
	a, err := s.repo.GetByID(articleID)
	if err != nil {
		return err
	}

	isOwner := a.UserID != nil && *a.UserID == userID
	if !isOwner && role != userDatamodel.RoleAdmin {
		return apperrors.ErrUnauthorizedAccess
	}

	if err := s.repo.Delete(articleID); err != nil {
		s.logger.Error("failed to delete article", "error", err, "article_id", articleID)
		return err
	}

	s.logger.Info("article deleted", "article_id", articleID, "user_id", userID)
	return nil
}

// ListApproved is the public awareness feed.
func (s *Service) ListApproved(search string, page int) (*ListResponse, error) {
	return s.list(ListOptions{
		Status: articleDatamodel.StatusApproved,
		Search: search,
	}, page, pagination.PersonalPageSize)
}

// ListMine shows the owner all their articles regardless of status.
func (s *Service) ListMine(userID int64, page int) (*ListResponse, error) {
	return s.list(ListOptions{UserID: &userID}, page, pagination.PersonalPageSize)
}

// ListPending is the admin moderation queue.
func (s *Service) ListPending(page int) (*ListResponse, error) {
	return s.list(ListOptions{Status: articleDatamodel.StatusPending}, page, pagination.AdminPageSize)
}

func (s *Service) list(opts ListOptions, page, perPage int) (*ListResponse, error) {
	opts.Limit = perPage
	opts.Offset = pagination.OffsetFor(page, perPage)

	articles, total, err := s.repo.List(opts)
	if err != nil {
		s.logger.Error("failed to list articles", "error", err)
		return nil, err
	}

	return &ListResponse{
		Articles:   articles,
		Pagination: pagination.New(page, perPage, total),
	}, nil
}

// Moderate sets an article's status to approved or rejected. The write is an
// unconditional overwrite, so repeating a decision or flipping it later is
// fine.
func (s *Service) Moderate(adminID, articleID int64, approve bool) (*ModerateResponse, error) {
	a, err := s.repo.GetByID(articleID)
	if err != nil {
		return nil, err
	}

	status := articleDatamodel.StatusRejected
	if approve {
		status = articleDatamodel.StatusApproved
	}

	if err := s.repo.UpdateStatus(articleID, status); err != nil {
		s.logger.Error("moderation failed", "error", err, "article_id", articleID, "admin_id", adminID)
		return nil, err
	}
	a.Status = status

	s.bus.Publish(context.Background(), events.NewArticleModeratedEvent(articleID, adminID, status))

	s.logger.Info("article moderated",
		"article_id", articleID,
		"admin_id", adminID,
		"decision", status)

	return &ModerateResponse{
		Article: a,
		Message: fmt.Sprintf("Article %d %s", articleID, status),
	}, nil
}
