package postgres

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/SenszZ00/cybersafelara1-sub000/internal"
	feedbackDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/feedback"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/feedback"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) feedback.Repository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(f *feedbackDatamodel.Feedback) error {
	return r.db.Create(f).Error
}

func (r *FeedbackRepository) GetByID(id int64) (*feedbackDatamodel.Feedback, error) {
	var f feedbackDatamodel.Feedback
	err := r.db.Preload("User").Where("id = ?", id).First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFeedbackNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FeedbackRepository) List(limit, offset int) ([]*feedbackDatamodel.Feedback, int64, error) {
	var total int64
	if err := r.db.Model(&feedbackDatamodel.Feedback{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*feedbackDatamodel.Feedback
	err := r.db.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
