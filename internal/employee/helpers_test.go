package employee_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MemorialTransportation/web-backend/internal/db"
	"github.com/MemorialTransportation/web-backend/internal/employee"
	"github.com/MemorialTransportation/web-backend/internal/password"
	"github.com/MemorialTransportation/web-backend/internal/session"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func strPtr(s string) *string { return &s }

// fakeDirectory is an in-memory employee.Directory.
type fakeDirectory struct {
	records map[string]employee.Employee
	err     error
	calls   int
}

func (f *fakeDirectory) FindByUsername(ctx context.Context, username string) (*employee.Employee, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.records[username]
	if !ok {
		return nil, employee.ErrNotFound
	}
	return &e, nil
}

// staffDirectory holds an active "jdoe" (password Secret1) and an inactive
// "bob" (password Hunter2).
func staffDirectory() *fakeDirectory {
	return &fakeDirectory{records: map[string]employee.Employee{
		"jdoe": {
			ID:           1,
			Username:     "jdoe",
			Email:        "jdoe@memorialtransportation.com",
			PasswordHash: password.Hash("Secret1"),
			FirstName:    strPtr("Jane"),
			LastName:     strPtr("Doe"),
			Role:         employee.RoleDispatcher,
			IsActive:     true,
		},
		"bob": {
			ID:           2,
			Username:     "bob",
			Email:        "bob@memorialtransportation.com",
			PasswordHash: password.Hash("Hunter2"),
			Role:         employee.RoleDriver,
			IsActive:     false,
		},
	}}
}

func newManager() *session.Manager {
	return session.NewManager(session.Options{Secret: testSecret, TTL: time.Hour})
}

// newTestDB opens a private in-memory SQLite database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	d, err := db.Open("sqlite://file:"+uuid.NewString()+"?mode=memory&cache=shared", zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := d.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { db.Close(d) })
	return d
}
