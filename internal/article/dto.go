package article

import (
	apperrors "github.com/SenszZ00/cybersafelara1-sub000/internal"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/core/common/pagination"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/core/common/validation"
	articleDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/article"
)

const maxTitleLength = 255

type CreateArticleDTO struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Keyword    *string `json:"keyword,omitempty"`
	CategoryID *int64  `json:"category_id,omitempty"`
}

func (dto CreateArticleDTO) Validate() *apperrors.AppError {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLength(maxTitleLength)
	v.Field("content", dto.Content).Required()
	return v.Validate()
}

type UpdateArticleDTO struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Keyword    *string `json:"keyword,omitempty"`
	CategoryID *int64  `json:"category_id,omitempty"`
}

func (dto UpdateArticleDTO) Validate() *apperrors.AppError {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLength(maxTitleLength)
	v.Field("content", dto.Content).Required()
	return v.Validate()
}

// ListOptions drives both the public feed and the scoped views.
type ListOptions struct {
	UserID *int64
	Status string
	// Search matches case-insensitively against title, content, keyword
	// and the category name.
	Search string
	Limit  int
	Offset int
}

type ListResponse struct {
	Articles   []*articleDatamodel.Article `json:"articles"`
	Pagination pagination.Pagination       `json:"pagination"`
}

type ModerateResponse struct {
	Article *articleDatamodel.Article `json:"article"`
	Message string                    `json:"message"`
}
