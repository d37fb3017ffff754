package report

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"

	"github.com/SenszZ00/cybersafelara1-sub000/internal/auth"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/storage"
	"github.com/SenszZ00/cybersafelara1-sub000/internal/transport"
	"github.com/SenszZ00/cybersafelara1-sub000/pkg/logger"
)

type ServiceAPI interface {
	Submit(reporterID int64, dto SubmitReportDTO, attachment *storage.Object) (*View, error)
	Get(viewer Viewer, reportID int64) (*View, error)
	List(viewer Viewer, filters Filters, page int) (*ListResponse, error)
	Assign(adminID, reportID int64, assigneeID *int64) (*AssignResponse, error)
	Transition(actorID, reportID int64, dto TransitionStatusDTO) (*TransitionResponse, error)
	Delete(ownerID, reportID int64) error
	AttachmentURL(viewer Viewer, reportID int64) (string, error)
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

func viewerFrom(u *auth.CurrentUser) Viewer {
	return Viewer{ID: u.ID, Role: u.Role}
}

// CreateReport accepts either a JSON body or a multipart form with an
// optional "attachment" file part.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateReport: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitReportDTO
	var attachment *storage.Object

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		parsed, obj, err := h.parseMultipart(r)
		if err != nil {
			h.Logger.Error("CreateReport: invalid multipart form", "error", err)
			h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		dto = parsed
		attachment = obj
		if attachment != nil {
			defer r.MultipartForm.RemoveAll()
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.Logger.Error("CreateReport: invalid request body", "error", err)
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	view, err := h.Service.Submit(user.ID, dto, attachment)
	if err != nil {
		h.Logger.Error("CreateReport: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, view)
}

func (h *Handler) parseMultipart(r *http.Request) (SubmitReportDTO, *storage.Object, error) {
	var dto SubmitReportDTO

	if err := r.ParseMultipartForm(storage.MaxAttachmentSize + 1<<20); err != nil {
		return dto, nil, err
	}

	categoryID, err := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	if err != nil {
		return dto, nil, err
	}
	dto.CategoryID = categoryID
	dto.Description = r.FormValue("description")
	dto.Anonymous = r.FormValue("anonymous") == "true" || r.FormValue("anonymous") == "1"

	if raw := r.FormValue("incident_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return dto, nil, err
		}
		dto.IncidentDate = &t
	}

	file, header, err := r.FormFile("attachment")
	if err == http.ErrMissingFile {
		return dto, nil, nil
	}
	if err != nil {
		return dto, nil, err
	}

	return dto, &storage.Object{
		Reader:      file,
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reportID, err := h.reportIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid report ID")
		return
	}

	view, err := h.Service.Get(viewerFrom(user), reportID)
	if err != nil {
		h.Logger.Error("GetReport: service error", "error", err, "report_id", reportID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

// ListReports serves every role from one endpoint: the service scopes the
// result set to the caller's role.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filters := Filters{
		Date:         r.URL.Query().Get("date"),
		StatusName:   r.URL.Query().Get("status"),
		CategoryName: r.URL.Query().Get("category"),
	}

	resp, err := h.Service.List(viewerFrom(user), filters, pageParam(r))
	if err != nil {
		h.Logger.Error("ListReports: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) AssignReport(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reportID, err := h.reportIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid report ID")
		return
	}

	var dto AssignReportDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AssignReport: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Assign(user.ID, reportID, dto.AssigneeID)
	if err != nil {
		h.Logger.Error("AssignReport: service error", "error", err, "report_id", reportID, "admin_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reportID, err := h.reportIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid report ID")
		return
	}

	var dto TransitionStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("TransitionStatus: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Transition(user.ID, reportID, dto)
	if err != nil {
		h.Logger.Error("TransitionStatus: service error", "error", err, "report_id", reportID, "actor_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reportID, err := h.reportIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid report ID")
		return
	}

	if err := h.Service.Delete(user.ID, reportID); err != nil {
		h.Logger.Error("DeleteReport: service error", "error", err, "report_id", reportID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "report deleted"})
}

func (h *Handler) GetAttachmentURL(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reportID, err := h.reportIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid report ID")
		return
	}

	url, err := h.Service.AttachmentURL(viewerFrom(user), reportID)
	if err != nil {
		h.Logger.Error("GetAttachmentURL: service error", "error", err, "report_id", reportID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *Handler) reportIDParam(r *http.Request) (int64, error) {
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
