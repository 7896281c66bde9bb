package user

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
)

type ServiceAPI interface {
	RegisterHR(dto RegisterHRDTO) (*User, error)
	VerifyEmail(token string) (*User, error)
	AddEmployee(hrID int64, dto AddEmployeeDTO) (*User, error)
	ListEmployees(hrID int64, search string) ([]*EmployeeSummary, error)
	UpdateUserProfile(userID int64, dto UpdateUserProfileDTO) (*User, error)
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

// Signup registers a new HR account. The verification email is sent
// asynchronously; the response does not wait for it.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var dto RegisterHRDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Signup: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.RegisterHR(dto)
	if err != nil {
		h.Logger.Error("Signup: service error", "error", err)
		if err == ErrEmailTaken {
			h.HandleError(w, internal.NewInvalidStateError("email is already registered", internal.ErrCodeEmailTaken))
			return
		}
		h.HandleError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"user":    u,
		"message": "verification email sent",
	})
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.WriteError(w, http.StatusBadRequest, "token is required")
		return
	}

	u, err := h.Service.VerifyEmail(token)
	if err != nil {
		h.Logger.Warn("VerifyEmail: verification failed", "error", err)
		switch err {
		case ErrTokenInvalid:
			h.HandleError(w, internal.NewValidationError("verification token is invalid", internal.ErrCodeInvalidToken))
		case ErrTokenExpired:
			h.HandleError(w, internal.NewValidationError("verification token has expired", internal.ErrCodeTokenExpired))
		case ErrAlreadyVerified:
			h.HandleError(w, internal.NewInvalidStateError("email is already verified", internal.ErrCodeAlreadyVerified))
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to verify email")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user":    u,
		"message": "email verified",
	})
}

// AddEmployee onboards a new employee under the calling HR. The router
// mounts it behind the HR role guard.
func (h *Handler) AddEmployee(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok || caller == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto AddEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AddEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.AddEmployee(caller.ID, dto)
	if err != nil {
		h.Logger.Error("AddEmployee: service error", "error", err, "hr_id", caller.ID)
		if err == ErrEmailTaken {
			h.HandleError(w, internal.NewInvalidStateError("email is already registered", internal.ErrCodeEmailTaken))
			return
		}
		h.HandleError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
		return
	}

	h.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok || caller == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	search := r.URL.Query().Get("search")

	employees, err := h.Service.ListEmployees(caller.ID, search)
	if err != nil {
		h.Logger.Error("ListEmployees: service error", "error", err, "hr_id", caller.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list employees")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"employees": employees})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok || caller == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateUserProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.UpdateUserProfile(caller.ID, dto)
	if err != nil {
		h.Logger.Error("UpdateProfile: service error", "error", err, "user_id", caller.ID)
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}
