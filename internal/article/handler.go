package article

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/SenszZ00/cybersafelara1-sub000/internal/auth"
	articleDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/article"
	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/transport"
	"github.com/SenszZ00/cybersafelara1-sub000/pkg/logger"
)

type ServiceAPI interface {
	Create(userID int64, dto CreateArticleDTO) (*articleDatamodel.Article, error)
	Get(viewerID int64, role userDatamodel.Role, articleID int64) (*articleDatamodel.Article, error)
	Update(userID, articleID int64, dto UpdateArticleDTO) (*articleDatamodel.Article, error)
	Delete(userID, articleID int64, role userDatamodel.Role) error
	ListApproved(search string, page int) (*ListResponse, error)
	ListMine(userID int64, page int) (*ListResponse, error)
	ListPending(page int) (*ListResponse, error)
	Moderate(adminID, articleID int64, approve bool) (*ModerateResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateArticleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateArticle: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Create(user.ID, dto)
	if err != nil {
		h.Logger.Error("CreateArticle: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	articleID, err := h.articleIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	a, err := h.Service.Get(user.ID, user.Role, articleID)
	if err != nil {
		h.Logger.Error("GetArticle: service error", "error", err, "article_id", articleID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	articleID, err := h.articleIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	var dto UpdateArticleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateArticle: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Update(user.ID, articleID, dto)
	if err != nil {
		h.Logger.Error("UpdateArticle: service error", "error", err, "article_id", articleID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	articleID, err := h.articleIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	if err := h.Service.Delete(user.ID, articleID, user.Role); err != nil {
		h.Logger.Error("DeleteArticle: service error", "error", err, "article_id", articleID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "article deleted"})
}

// ListArticles is the public feed of approved articles with optional search.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.ListApproved(r.URL.Query().Get("search"), pageParam(r))
	if err != nil {
		h.Logger.Error("ListArticles: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListMyArticles(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resp, err := h.Service.ListMine(user.ID, pageParam(r))
	if err != nil {
		h.Logger.Error("ListMyArticles: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListPendingArticles(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.ListPending(pageParam(r))
	if err != nil {
		h.Logger.Error("ListPendingArticles: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ApproveArticle(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, true)
}

func (h *Handler) RejectArticle(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, false)
}

func (h *Handler) moderate(w http.ResponseWriter, r *http.Request, approve bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	articleID, err := h.articleIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid article ID")
		return
	}

	resp, err := h.Service.Moderate(user.ID, articleID, approve)
	if err != nil {
		h.Logger.Error("moderate: service error", "error", err, "article_id", articleID, "admin_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) articleIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func pageParam(r *http.Request) int {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 0 {
			page = p
		}
	}
	return page
}
