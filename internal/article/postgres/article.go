package postgres

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/SenszZ00/cybersafelara1-sub000/internal"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/article"
	articleDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/article"
)

// ArticleRepository implements article.Repository using GORM.
type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) article.Repository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(a *articleDatamodel.Article) error {
	return r.db.Create(a).Error
}

func (r *ArticleRepository) GetByID(id int64) (*articleDatamodel.Article, error) {
	var a articleDatamodel.Article
	err := r.db.
		Preload("User").
		Preload("Category").
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ArticleRepository) Update(a *articleDatamodel.Article) error {
	a.UpdatedAt = time.Now()
	return r.db.Save(a).Error
}

func (r *ArticleRepository) UpdateStatus(id int64, status string) error {
	res := r.db.Model(&articleDatamodel.Article{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(id int64) error {
	res := r.db.Where("id = ?", id).Delete(&articleDatamodel.Article{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrArticleNotFound
	}
	return nil
}

// List applies status/owner scoping plus the case-insensitive search over
// title, content, keyword and category name.
func (r *ArticleRepository) List(opts article.ListOptions) ([]*articleDatamodel.Article, int64, error) {
	query := r.db.Model(&articleDatamodel.Article{})

	if opts.UserID != nil {
		query = query.Where("articles.user_id = ?", *opts.UserID)
	}
	if opts.Status != "" {
		query = query.Where("articles.status = ?", opts.Status)
	}
	if opts.Search != "" {
		needle := "%" + strings.ToLower(opts.Search) + "%"
		query = query.
			Joins("LEFT JOIN report_categories ON report_categories.id = articles.category_id").
			Where(
				"LOWER(articles.title) LIKE ? OR LOWER(articles.content) LIKE ? OR LOWER(articles.keyword) LIKE ? OR LOWER(report_categories.name) LIKE ?",
				needle, needle, needle, needle,
			)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []*articleDatamodel.Article
	err := query.
		Preload("User").
		Preload("Category").
		Order("articles.created_at DESC").
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}
