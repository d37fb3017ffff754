package postgres

import (
	"errors"

	"gorm.io/gorm"

	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ListByRole(role userDatamodel.Role) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.
		Where("role = ? AND is_active = ?", role, true).
		Order("username ASC").
		Find(&users).Error
	return users, err
}
