package httpapi

import (
	"errors"
	"net/http"

	"github.com/noizee/storefront/internal/app/services/auth"
	"github.com/noizee/storefront/internal/app/validation"
	"github.com/noizee/storefront/internal/httputil"
)

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

type sessionResponse struct {
	State         string `json:"state"`
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
}

// login exchanges shop credentials for a gateway token. The backend session
// stays inside the process; admin REST calls carry the gateway's own token.
func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.DecodeJSON(r, &req, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	sess, err := h.app.Auth.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		h.loginErr(w, err)
		return
	}

	token := sess.Token
	if h.auth != nil {
		token, err = h.auth.Issue(sess)
		if err != nil {
			h.log.WithError(err).Error("issuing gateway token failed")
			httputil.Internal(w)
			return
		}
	}

	httputil.WriteJSON(w, http.StatusOK, loginResponse{
		Token:       token,
		UserID:      sess.UserID,
		DisplayName: sess.DisplayName,
		Username:    sess.Username,
		Email:       sess.Email,
	})
}

// loginErr keeps credential failures indistinguishable from unknown accounts.
func (h *handler) loginErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, validation.ErrInvalid):
		httputil.BadRequest(w, err.Error())
	case errors.Is(err, auth.ErrNotAdmin):
		httputil.Forbidden(w, "account is not an administrator")
	default:
		httputil.Unauthorized(w, "invalid credentials")
	}
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Auth.Logout(r.Context()); err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *handler) session(w http.ResponseWriter, r *http.Request) {
	sess := h.app.Auth.Current()
	httputil.WriteJSON(w, http.StatusOK, sessionResponse{
		State:         string(sess.State()),
		Authenticated: sess.Valid(),
		UserID:        sess.UserID,
		DisplayName:   sess.DisplayName,
	})
}
