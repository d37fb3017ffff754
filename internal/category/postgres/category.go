package postgres

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/SenszZ00/cybersafelara1-sub000/internal"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/category"
	categoryDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/category"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(c *categoryDatamodel.ReportCategory) error {
	if err := r.db.Create(c).Error; err != nil {
		return mapDuplicate(err)
	}
	return nil
}

func (r *CategoryRepository) GetByID(id int64) (*categoryDatamodel.ReportCategory, error) {
	var c categoryDatamodel.ReportCategory
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Update(c *categoryDatamodel.ReportCategory) error {
	c.UpdatedAt = time.Now()
	if err := r.db.Save(c).Error; err != nil {
		return mapDuplicate(err)
	}
	return nil
}

func (r *CategoryRepository) Delete(id int64) error {
	res := r.db.Where("id = ?", id).Delete(&categoryDatamodel.ReportCategory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) ListAll() ([]*categoryDatamodel.ReportCategory, error) {
	var categories []*categoryDatamodel.ReportCategory
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func mapDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
		return apperrors.ErrDuplicateCategory
	}
	return err
}
