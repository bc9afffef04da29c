// Package session holds the authenticated session model.
package session

// State is the session state machine. There are exactly two states; every
// failed or rejected login lands back on Anonymous.
type State string

const (
	Anonymous          State = "ANONYMOUS"
	AuthenticatedAdmin State = "AUTHENTICATED_ADMIN"
)

// Session is the credential set persisted between runs. It is valid only
// when both the token and the administrator flag are present; any mismatch
// forces invalidation.
type Session struct {
	Token       string `json:"token"`
	IsAdmin     bool   `json:"is_admin"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

// Valid reports whether the session authenticates an administrator.
func (s Session) Valid() bool {
	return s.Token != "" && s.IsAdmin
}

// State derives the state machine position.
func (s Session) State() State {
	if s.Valid() {
		return AuthenticatedAdmin
	}
	return Anonymous
}
