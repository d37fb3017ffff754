package reportlog

import (
	"net/http"
	"strconv"

	"github.com/SenszZ00/cybersafelara1-sub000/internal/auth"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/transport"
	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
	"github.com/SenszZ00/cybersafelara1-sub000/pkg/logger"
)

type ServiceAPI interface {
	List(viewerID int64, role userDatamodel.Role, reportID *int64, filters Filters, page int) (*ListResponse, error)
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

// ListLogs serves the audit trail for admins and IT personnel. An optional
// report_id query narrows the view to one report.
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var reportID *int64
	if raw := r.URL.Query().Get("report_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid report_id")
			return
		}
		reportID = &id
	}

	filters := Filters{
		Date:         r.URL.Query().Get("date"),
		Status:       r.URL.Query().Get("status"),
		CategoryName: r.URL.Query().Get("category"),
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 0 {
			page = p
		}
	}

	resp, err := h.Service.List(user.ID, user.Role, reportID, filters, page)
	if err != nil {
		h.Logger.Error("ListLogs: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
