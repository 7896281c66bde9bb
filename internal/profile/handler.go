package profile

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
	GetProfile(userID int64) (*ProfileView, error)
	GetEmployeeProfile(hrID, employeeID int64) (*EmployeeProfileView, error)
	UpdateDetails(userID int64, dto UpdateDetailsDTO) (*EmployeeDetails, error)
	UpdateEmployeeDetails(hrID, employeeID int64, dto UpdateDetailsDTO) (*EmployeeDetails, error)
	UpdateSalary(userID int64, dto UpdateSalaryDTO) (*SalaryInfo, error)
	UpdateEmployeeSalary(hrID, employeeID int64, dto UpdateSalaryDTO) (*SalaryInfo, error)
	GetEmployeeSalary(hrID, employeeID int64) (*SalaryInfo, error)
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

func (h *Handler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	view, err := h.Service.GetProfile(user.ID)
	if err != nil {
		h.Logger.Error("GetOwnProfile: service error", "error", err, "user_id", user.ID)
		h.writeProfileError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) UpdateOwnDetails(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateDetailsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateOwnDetails: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	details, err := h.Service.UpdateDetails(user.ID, dto)
	if err != nil {
		h.Logger.Error("UpdateOwnDetails: service error", "error", err, "user_id", user.ID)
		h.writeProfileError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, details)
}

func (h *Handler) UpdateOwnSalary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateSalaryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	salary, err := h.Service.UpdateSalary(user.ID, dto)
	if err != nil {
		h.Logger.Error("UpdateOwnSalary: service error", "error", err, "user_id", user.ID)
		h.writeProfileError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, salary)
}

// GetEmployeeProfile serves the HR view of a managed employee. The router
// mounts it behind the HR role guard.
func (h *Handler) GetEmployeeProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employeeID, err := h.employeeIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	view, err := h.Service.GetEmployeeProfile(user.ID, employeeID)
	if err != nil {
		h.Logger.Error("GetEmployeeProfile: service error", "error", err, "hr_id", user.ID, "employee_id", employeeID)
		h.writeProfileError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) UpdateEmployeeDetails(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employeeID, err := h.employeeIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	var dto UpdateDetailsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	details, err := h.Service.UpdateEmployeeDetails(user.ID, employeeID, dto)
	if err != nil {
		h.Logger.Error("UpdateEmployeeDetails: service error", "error", err, "hr_id", user.ID, "employee_id", employeeID)
		h.writeProfileError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, details)
}

func (h *Handler) GetEmployeeSalary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employeeID, err := h.employeeIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	salary, err := h.Service.GetEmployeeSalary(user.ID, employeeID)
	if err != nil {
		h.Logger.Error("GetEmployeeSalary: service error", "error", err, "hr_id", user.ID, "employee_id", employeeID)
		h.writeProfileError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, salary)
}

func (h *Handler) UpdateEmployeeSalary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employeeID, err := h.employeeIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	var dto UpdateSalaryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	salary, err := h.Service.UpdateEmployeeSalary(user.ID, employeeID, dto)
	if err != nil {
		h.Logger.Error("UpdateEmployeeSalary: service error", "error", err, "hr_id", user.ID, "employee_id", employeeID)
		h.writeProfileError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, salary)
}

func (h *Handler) employeeIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) writeProfileError(w http.ResponseWriter, err error) {
	switch err {
	case ErrUserNotFound:
		h.WriteError(w, http.StatusNotFound, "user not found")
	case ErrNotManaged:
		h.WriteError(w, http.StatusForbidden, "employee is not managed by you")
	default:
		h.WriteError(w, http.StatusInternalServerError, "failed to process profile request")
	}
}
