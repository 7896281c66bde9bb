package attendance

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
)

type ServiceAPI interface {
	CheckIn(userID int64) (*Attendance, error)
	CheckOut(userID int64) (*Attendance, error)
	TodayStatus(userID int64) (*Attendance, error)
	Range(userID int64, dto RangeDTO) ([]*Attendance, error)
	ManagedRange(hrID int64, dto RangeDTO, search string) ([]*AttendanceWithUser, error)
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

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	att, err := h.Service.CheckIn(user.ID)
	if err != nil {
		h.Logger.Error("CheckIn: service error", "error", err, "user_id", user.ID)

		switch err {
		case ErrAlreadyCheckedIn:
			h.WriteError(w, http.StatusConflict, "already checked in today")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to check in")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, att)
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	att, err := h.Service.CheckOut(user.ID)
	if err != nil {
		h.Logger.Error("CheckOut: service error", "error", err, "user_id", user.ID)

		switch err {
		case ErrNotCheckedIn:
			h.WriteError(w, http.StatusConflict, "please check in first")
		case ErrAlreadyCheckedOut:
			h.WriteError(w, http.StatusConflict, "already checked out today")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to check out")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, att)
}

func (h *Handler) TodayStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	att, err := h.Service.TodayStatus(user.ID)
	if err != nil {
		h.Logger.Error("TodayStatus: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get attendance status")
		return
	}

	if att == nil {
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{"attendance": nil})
		return
	}

	h.WriteJSON(w, http.StatusOK, att)
}

func (h *Handler) GetRange(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	dto, err := parseRange(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.Service.Range(user.ID, dto)
	if err != nil {
		h.Logger.Error("GetRange: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list attendance")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"attendance": records})
}

// GetManagedRange serves the HR attendance overview. The router mounts it
// behind the HR role guard.
func (h *Handler) GetManagedRange(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	dto, err := parseRange(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	search := r.URL.Query().Get("search")

	records, err := h.Service.ManagedRange(user.ID, dto, search)
	if err != nil {
		h.Logger.Error("GetManagedRange: service error", "error", err, "hr_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list attendance")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"attendance": records})
}

func parseRange(r *http.Request) (RangeDTO, error) {
	var dto RangeDTO

	if v := r.URL.Query().Get("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return dto, err
		}
		dto.StartDate = t
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return dto, err
		}
		dto.EndDate = t
	}

	return dto, dto.Validate()
}
