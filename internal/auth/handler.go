package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ResolveUser(claims *Claims) (*User, error)
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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Login: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		var vErr ValidationError
		if errors.As(err, &vErr) {
			h.WriteError(w, http.StatusBadRequest, vErr.Msg)
			return
		}
		h.Logger.Warn("Login: authentication failed", "email", dto.Email)
		h.WriteError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Warn("RefreshToken: refresh failed", "error", err)
		h.WriteError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; logout is client-side token disposal.
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// AuthMiddleware validates the bearer token and loads the full user identity
// into the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := h.ExtractTokenFromHeader(r)
		if tokenString == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(tokenString)
		if err != nil {
			h.Logger.Warn("AuthMiddleware: token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		user, err := h.Service.ResolveUser(claims)
		if err != nil {
			h.Logger.Warn("AuthMiddleware: user lookup failed", "user_id", claims.UserID, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "unknown user")
			return
		}

		ctx := ContextWithUser(r.Context(), user)
		ctx = internal.ContextWithUserID(ctx, user.ID)
		ctx = logger.With(ctx, "user_id", user.ID, "role", user.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireHR guards HR-only route groups. It assumes AuthMiddleware already ran.
func RequireHR(lg *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.IsHR() {
				lg.WarnContext(r.Context(), "access denied: HR role required",
					"user_id", user.ID,
					"role", user.Role)
				http.Error(w, "Forbidden: HR role required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
