// Package session issues and reads the employee session token: a signed JWT
// carried in a browser-session cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie that carries the session token.
const CookieName = "employee_session"

var (
	// ErrNoSession is returned when the request carries no session cookie.
	ErrNoSession = errors.New("no employee session")

	// ErrInvalidSession is returned for tokens that are expired, tampered with
	// or otherwise unreadable.
	ErrInvalidSession = errors.New("invalid employee session")
)

// Token is the projection of an employee held by the browser after login.
type Token struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      string  `json:"role"`
}

// Claims wraps Token for signing.
type Claims struct {
	Employee Token `json:"employee"`
	jwt.RegisteredClaims
}

// Options configures a Manager.
type Options struct {
	Secret []byte
	TTL    time.Duration
	Secure bool
}

// Manager signs session tokens and moves them in and out of cookies.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewManager creates a Manager. The secret must not be empty.
func NewManager(opts Options) *Manager {
	if len(opts.Secret) == 0 {
		panic("session: empty signing secret")
	}
	return &Manager{
		secret: opts.Secret,
		ttl:    opts.TTL,
		secure: opts.Secure,
		now:    time.Now,
	}
}

// Issue signs t and sets it as a session cookie. The cookie has no Max-Age so
// the browser drops it when the browser session ends; the JWT expiry bounds
// sessions that outlive that.
func (m *Manager) Issue(w http.ResponseWriter, t Token) error {
	signed, err := m.Sign(t)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Sign returns the signed JWT for t.
func (m *Manager) Sign(t Token) (string, error) {
	now := m.now()
	claims := Claims{
		Employee: t,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   t.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Parse validates a signed token and returns the employee it carries.
func (m *Manager) Parse(signed string) (Token, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return Token{}, ErrInvalidSession
	}
	if claims.Employee.Username == "" || claims.Subject != claims.Employee.Username {
		return Token{}, ErrInvalidSession
	}
	return claims.Employee, nil
}

// Read returns the session token carried by r.
func (m *Manager) Read(r *http.Request) (Token, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Token{}, ErrNoSession
	}
	return m.Parse(cookie.Value)
}

// Present reports whether r carries a valid session token.
func (m *Manager) Present(r *http.Request) bool {
	_, err := m.Read(r)
	return err == nil
}

// Clear expires the session cookie. Safe to call without a session.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
