package employee

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MemorialTransportation/web-backend/internal/session"
)

var (
	ErrUsernameRequired = errors.New("Username is required")
	ErrPasswordRequired = errors.New("Password is required")
)

// CredentialChecker is satisfied by *Authenticator.
type CredentialChecker interface {
	Authenticate(ctx context.Context, username, password string) (*Employee, error)
}

// SessionIssuer moves session tokens in and out of the browser. Satisfied by
// *session.Manager.
type SessionIssuer interface {
	Issue(w http.ResponseWriter, t session.Token) error
	Present(r *http.Request) bool
	Clear(w http.ResponseWriter)
}

// Gate ties a login decision to the browser session.
type Gate struct {
	auth     CredentialChecker
	sessions SessionIssuer
}

func NewGate(auth CredentialChecker, sessions SessionIssuer) *Gate {
	return &Gate{auth: auth, sessions: sessions}
}

// Login authenticates and, on success, sets the session cookie on w.
func (g *Gate) Login(ctx context.Context, w http.ResponseWriter, username, pw string) (Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Profile{}, ErrUsernameRequired
	}
	if pw == "" {
		return Profile{}, ErrPasswordRequired
	}

	e, err := g.auth.Authenticate(ctx, username, pw)
	if err != nil {
		return Profile{}, err
	}

	p := e.Profile()
	if err := g.sessions.Issue(w, p.Token()); err != nil {
		return Profile{}, fmt.Errorf("issuing session: %w", err)
	}
	return p, nil
}

func (g *Gate) SessionPresent(r *http.Request) bool {
	return g.sessions.Present(r)
}

// Logout expires the session cookie whether or not one exists.
func (g *Gate) Logout(w http.ResponseWriter) {
	g.sessions.Clear(w)
}

// IsInputError reports whether err came from login input validation.
func IsInputError(err error) bool {
	return errors.Is(err, ErrUsernameRequired) || errors.Is(err, ErrPasswordRequired)
}
