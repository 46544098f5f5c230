package api

import (
	"net/http"
	"time"

	"github.com/example/fpv-storefront/internal/api/middleware"
	"github.com/example/fpv-storefront/internal/auth"
	"go.uber.org/zap"
)

// SessionIssuer allocates ids for new shopper sessions
type SessionIssuer interface {
	NewID() string
}

// AuthHandlers issues shopper session tokens and admin tokens
type AuthHandlers struct {
	jwtService *auth.JWTService
	admin      auth.AdminAccount
	sessions   SessionIssuer
	logger     *zap.Logger
}

func NewAuthHandlers(jwtService *auth.JWTService, admin auth.AdminAccount, sessions SessionIssuer, logger *zap.Logger) *AuthHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandlers{
		jwtService: jwtService,
		admin:      admin,
		sessions:   sessions,
		logger:     logger.Named("auth"),
	}
}

// TokenResponse is returned by the session and login endpoints
type TokenResponse struct {
	SessionID string    `json:"sessionId,omitempty"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LoginRequest represents the admin login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateSession returns a token for the caller's session. A caller that
// already holds a valid session token keeps its session; anyone else gets
// a fresh one.
func (h *AuthHandlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	sessionID, err := h.jwtService.ValidateSessionToken(middleware.ExtractToken(r, middleware.SessionCookie))
	if err != nil {
		sessionID = h.sessions.NewID()
		status = http.StatusCreated
	}

	token, expiresAt, err := h.jwtService.GenerateSessionToken(sessionID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	if status == http.StatusCreated {
		h.logger.Info("session created", zap.String("session_id", sessionID))
	}
	respondJSON(w, status, TokenResponse{SessionID: sessionID, Token: token, ExpiresAt: expiresAt})
}

// AdminLogin checks the configured admin credentials and issues an admin token
func (h *AuthHandlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.admin.Authenticate(req.Email, req.Password); err != nil {
		h.logger.Warn("admin login failed", zap.String("email", req.Email))
		writeError(w, h.logger, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateAdminToken(h.admin.Email)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookie,
		Value:    token,
		Path:     "/admin",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	h.logger.Info("admin logged in", zap.String("email", h.admin.Email))
	respondJSON(w, http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
}
