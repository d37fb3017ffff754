package category

import (
	"log/slog"

	apperrors "github.com/SenszZ00/cybersafelara1-sub000/internal"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/core/common/validation"
	categoryDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/category"
)

const maxNameLength = 100

type CategoryDTO struct {
	Name string `json:"name"`
}

func (dto CategoryDTO) Validate() *apperrors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(maxNameLength)
	return v.Validate()
}

type Repository interface {
	Create(c *categoryDatamodel.ReportCategory) error
	GetByID(id int64) (*categoryDatamodel.ReportCategory, error)
	Update(c *categoryDatamodel.ReportCategory) error
	Delete(id int64) error
	ListAll() ([]*categoryDatamodel.ReportCategory, error)
}

// Service manages the report category catalog. The catalog is small and
// read far more often than it changes, so the list is unpaged.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(dto CategoryDTO) (*categoryDatamodel.ReportCategory, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	c := &categoryDatamodel.ReportCategory{Name: dto.Name}
	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create category", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("category created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *Service) Get(id int64) (*categoryDatamodel.ReportCategory, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Update(id int64, dto CategoryDTO) (*categoryDatamodel.ReportCategory, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	c.Name = dto.Name
	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return err
	}

	s.logger.Info("category deleted", "category_id", id)
	return nil
}

func (s *Service) List() ([]*categoryDatamodel.ReportCategory, error) {
	return s.repo.ListAll()
}
