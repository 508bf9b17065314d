package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/pizzeria/internal/api/middleware"
	"github.com/mcoot/pizzeria/internal/api/request"
	"github.com/mcoot/pizzeria/internal/api/response"
	"github.com/mcoot/pizzeria/internal/model"
	"github.com/mcoot/pizzeria/internal/services/identity"
	"github.com/mcoot/pizzeria/internal/services/session"
)

// AuthHandler handles registration, login and the session lifecycle
type AuthHandler struct {
	resolver *identity.Resolver
	sessions *session.Service
	cookies  *middleware.SessionCookies
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	resolver *identity.Resolver,
	sessions *session.Service,
	cookies *middleware.SessionCookies,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		resolver: resolver,
		sessions: sessions,
		cookies:  cookies,
		logger:   logger,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	account, err := h.resolver.Register(r.Context(), identity.Registration{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.bind(w, r, account, http.StatusCreated)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	account, err := h.resolver.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.bind(w, r, account, http.StatusOK)
}

// bind attaches account to a fresh session, replacing whatever the caller
// was bound to before.
func (h *AuthHandler) bind(w http.ResponseWriter, r *http.Request, account *model.Account, status int) {
	previous := middleware.GetSession(r.Context()).Token

	s, err := h.sessions.Bind(r.Context(), previous, account)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.cookies.Set(w, s.Token, s.ExpiresAt)
	response.JSON(w, status, response.AuthResponseFromSession(s))
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s := middleware.GetSession(r.Context())
	if err := h.sessions.Clear(r.Context(), s.Token); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.cookies.Clear(w)
	response.NoContent(w)
}

// WhoAmI handles GET /api/auth/whoami
func (h *AuthHandler) WhoAmI(w http.ResponseWriter, r *http.Request) {
	s := middleware.GetSession(r.Context())

	var resp response.WhoAmIResponse
	if s.Bound() {
		account := response.AccountFromModel(s.Account)
		resp.Account = &account
	}
	response.JSON(w, http.StatusOK, resp)
}
