package user

import (
	"log/slog"

	apperrors "github.com/SenszZ00/cybersafelara1-sub000/internal"
	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
)

// Profile is the public projection of a user account. Password hashes never
// leave this package.
type Profile struct {
	ID         int64              `json:"id"`
	Username   string             `json:"username"`
	Email      string             `json:"email"`
	Role       userDatamodel.Role `json:"role"`
	Department *string            `json:"department,omitempty"`
}

func NewProfile(u *userDatamodel.User) *Profile {
	return &Profile{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
	}
}

type Repository interface {
	GetByID(id int64) (*userDatamodel.User, error)
	ListByRole(role userDatamodel.Role) ([]*userDatamodel.User, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetProfile(id int64) (*Profile, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("User not found", apperrors.ErrCodeUserNotFound)
	}
	return NewProfile(u), nil
}

// ListITPersonnel backs the admin assignment screen: the set of accounts a
// report can be assigned to.
func (s *Service) ListITPersonnel() ([]*Profile, error) {
	users, err := s.repo.ListByRole(userDatamodel.RoleIT)
	if err != nil {
		s.logger.Error("failed to list IT personnel", "error", err)
		return nil, err
	}

	profiles := make([]*Profile, len(users))
	for i, u := range users {
		profiles[i] = NewProfile(u)
	}
	return profiles, nil
}
