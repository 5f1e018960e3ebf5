package employee

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/MemorialTransportation/web-backend/internal/password"
)

// Demo credential, accepted only when no directory is configured.
const (
	DemoUsername = "memorialtransportation"
	demoPassword = "asiya$08"
	demoEmail    = "demo@memorialtransportation.com"
)

// ErrInvalidCredentials covers unknown usernames, wrong passwords and
// inactive accounts alike.
var ErrInvalidCredentials = errors.New("Invalid username or password")

// AuthOptions is resolved once at startup.
type AuthOptions struct {
	DemoMode bool
}

// Authenticator decides whether a username and password identify an active
// employee.
type Authenticator struct {
	dir  Directory
	demo bool
	log  *zap.Logger
}

// NewAuthenticator panics when dir is nil outside demo mode.
func NewAuthenticator(dir Directory, opts AuthOptions, log *zap.Logger) *Authenticator {
	if dir == nil && !opts.DemoMode {
		panic("employee: authenticator needs a directory outside demo mode")
	}
	if opts.DemoMode {
		log.Warn("demo mode: only the built-in demo credential is accepted", zap.String("username", DemoUsername))
	}
	return &Authenticator{dir: dir, demo: opts.DemoMode, log: log.Named("auth")}
}

// Authenticate returns the employee on success and ErrInvalidCredentials on
// any rejection. Other errors are storage faults and never match
// ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, username, pw string) (*Employee, error) {
	if a.demo {
		return authenticateDemo(username, pw)
	}

	e, err := a.dir.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		a.log.Debug("login rejected", zap.String("reason", "no match"))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("looking up employee: %w", err)
	}

	if !e.IsActive {
		a.log.Debug("login rejected", zap.String("reason", "inactive"), zap.Uint("employee_id", e.ID))
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(pw, e.PasswordHash) {
		a.log.Debug("login rejected", zap.String("reason", "password"), zap.Uint("employee_id", e.ID))
		return nil, ErrInvalidCredentials
	}

	return e, nil
}

func authenticateDemo(username, pw string) (*Employee, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(DemoUsername))
	passOK := subtle.ConstantTimeCompare([]byte(pw), []byte(demoPassword))
	if userOK&passOK != 1 {
		return nil, ErrInvalidCredentials
	}

	first, last := "Demo", "Admin"
	return &Employee{
		ID:        0,
		Username:  DemoUsername,
		Email:     demoEmail,
		FirstName: &first,
		LastName:  &last,
		Role:      RoleAdmin,
		IsActive:  true,
	}, nil
}
