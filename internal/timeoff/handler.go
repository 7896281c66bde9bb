package timeoff

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Request(userID int64, dto CreateTimeOffDTO) (*TimeOffRequest, error)
	Approve(requestID, approverID int64) (*TimeOffRequest, error)
	Reject(requestID, approverID int64, dto RejectTimeOffDTO) (*TimeOffRequest, error)
	Allocation(userID int64) (*AllocationView, error)
	ListForUser(userID int64) ([]*TimeOffRequest, error)
	ListForHR(hrID int64, search string) ([]*RequestWithUser, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateTimeOffDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateRequest: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.Request(user.ID, dto)
	if err != nil {
		h.Logger.Error("CreateRequest: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.WriteJSON(w, http.StatusCreated, req)
}

func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requests, err := h.Service.ListForUser(user.ID)
	if err != nil {
		h.Logger.Error("ListOwn: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

// ListManaged serves the HR request overview. The router mounts it behind
// the HR role guard.
func (h *Handler) ListManaged(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	search := r.URL.Query().Get("search")

	requests, err := h.Service.ListForHR(user.ID, search)
	if err != nil {
		h.Logger.Error("ListManaged: service error", "error", err, "hr_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID, err := h.requestIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	req, err := h.Service.Approve(requestID, user.ID)
	if err != nil {
		h.Logger.Error("Approve: service error", "error", err, "request_id", requestID, "approver_id", user.ID)
		h.writeDecisionError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID, err := h.requestIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	var dto RejectTimeOffDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := h.Service.Reject(requestID, user.ID, dto)
	if err != nil {
		h.Logger.Error("Reject: service error", "error", err, "request_id", requestID, "approver_id", user.ID)
		h.writeDecisionError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	view, err := h.Service.Allocation(user.ID)
	if err != nil {
		h.Logger.Error("GetAllocation: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get allocation")
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) requestIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) writeDecisionError(w http.ResponseWriter, err error) {
	switch err {
	case ErrRequestNotFound:
		h.WriteError(w, http.StatusNotFound, "request not found")
	case ErrNotManaged:
		h.WriteError(w, http.StatusForbidden, "employee is not managed by you")
	case ErrRequestNotPending:
		h.WriteError(w, http.StatusConflict, "request has already been decided")
	default:
		h.WriteError(w, http.StatusInternalServerError, "failed to update request")
	}
}
