package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/freightwave/go-sitecms/internal/identity"
)

// sessionManager is the slice of identity.SessionManager the handlers
// need. A nil manager disables the auth boundary, which only the
// in-memory degradation mode should ever do.
type sessionManager interface {
	Login(email, password string) (string, *identity.Session, error)
	Verify(token string) (*identity.Session, error)
}

type sessionContextKey struct{}

// SessionFromContext returns the verified admin session, if any.
func SessionFromContext(ctx context.Context) (*identity.Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*identity.Session)
	return session, ok && session != nil
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (api *AdminAPI) registerAuthRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("POST "+joinPath(base, "login"), api.handleLogin)
	mux.HandleFunc("GET "+joinPath(base, "session"), api.requireSession(api.handleSession))
}

func (api *AdminAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	if api.sessions == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable", Message: "auth disabled"})
		return
	}
	var payload loginPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	token, session, err := api.sessions.Login(payload.Email, payload.Password)
	if err != nil {
		api.logger.Warn("admin login rejected", "email", payload.Email)
		writeError(w, err)
		return
	}
	api.logger.Info("admin login", "email", session.Email)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Email: session.Email, ExpiresAt: session.ExpiresAt})
}

func (api *AdminAPI) handleSession(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Email: session.Email, ExpiresAt: session.ExpiresAt})
}

// requireSession verifies the bearer token before invoking next. Tokens
// are verified on every request; there is no server-side session store.
func (api *AdminAPI) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api.sessions == nil {
			next(w, r)
			return
		}
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: "missing bearer token"})
			return
		}
		session, err := api.sessions.Verify(token)
		if err != nil {
			writeError(w, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionContextKey{}, session)))
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
