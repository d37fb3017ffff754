package feedback

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/SenszZ00/cybersafelara1-sub000/internal/auth"
	feedbackDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/feedback"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/transport"
	"github.com/SenszZ00/cybersafelara1-sub000/pkg/logger"
)

type ServiceAPI interface {
	Submit(userID int64, dto SubmitFeedbackDTO) (*feedbackDatamodel.Feedback, error)
	Get(id int64) (*feedbackDatamodel.Feedback, error)
	List(page int) (*ListResponse, error)
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

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitFeedbackDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitFeedback: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := h.Service.Submit(user.ID, dto)
	if err != nil {
		h.Logger.Error("SubmitFeedback: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, f)
}

func (h *Handler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid feedback ID")
		return
	}

	f, err := h.Service.Get(id)
	if err != nil {
		h.Logger.Error("GetFeedback: service error", "error", err, "feedback_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, f)
}

func (h *Handler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 0 {
			page = p
		}
	}

	resp, err := h.Service.List(page)
	if err != nil {
		h.Logger.Error("ListFeedback: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
