package seeds_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MemorialTransportation/web-backend/internal/db"
	"github.com/MemorialTransportation/web-backend/internal/employee"
	"github.com/MemorialTransportation/web-backend/internal/fleet"
	"github.com/MemorialTransportation/web-backend/internal/password"
	"github.com/MemorialTransportation/web-backend/internal/seeds"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	d, err := db.Open("sqlite://file:"+uuid.NewString()+"?mode=memory&cache=shared", zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := d.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close(d) })

	require.NoError(t, employee.Init(d))
	require.NoError(t, fleet.Init(d))
	return d
}

func boolPtr(b bool) *bool { return &b }

func TestLoad_ExampleFile(t *testing.T) {
	f, err := seeds.Load("seed.example.yaml")
	require.NoError(t, err)

	require.Len(t, f.Employees, 2)
	assert.Equal(t, "jdoe", f.Employees[0].Username)
	require.NotNil(t, f.Employees[1].IsActive)
	assert.False(t, *f.Employees[1].IsActive)

	require.Len(t, f.Trucks, 2)
	require.NotNil(t, f.Trucks[0].Latitude)
	assert.InDelta(t, 33.80843, *f.Trucks[0].Latitude, 1e-9)
}

func TestLoad_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("employees:\n  - username: x\n    pasword: typo\n"), 0o600))

	_, err := seeds.Load(path)
	assert.Error(t, err)
}

func TestSeedAll_ExampleFile(t *testing.T) {
	d := newTestDB(t)
	f, err := seeds.Load("seed.example.yaml")
	require.NoError(t, err)

	require.NoError(t, seeds.SeedAll(context.Background(), d, f, zap.NewNop()))

	var jdoe employee.Employee
	require.NoError(t, d.Where("username = ?", "jdoe").Take(&jdoe).Error)
	assert.True(t, jdoe.IsActive, "isActive defaults to true")
	assert.Equal(t, employee.RoleDispatcher, jdoe.Role)
	assert.True(t, password.Verify("Secret1", jdoe.PasswordHash))

	var bob employee.Employee
	require.NoError(t, d.Where("username = ?", "bob").Take(&bob).Error)
	assert.False(t, bob.IsActive)
	assert.True(t, password.Verify("Secret1", bob.PasswordHash), "precomputed hash is stored as given")

	var trucks int64
	require.NoError(t, d.Model(&fleet.Truck{}).Count(&trucks).Error)
	assert.Equal(t, int64(2), trucks)
}

func TestSeedEmployees_SkipsExisting(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	first := []seeds.EmployeeSeed{{Username: "jdoe", Email: "jdoe@a.com", Password: "Secret1"}}
	require.NoError(t, seeds.SeedEmployees(ctx, d, first, zap.NewNop()))

	again := []seeds.EmployeeSeed{
		{Username: "jdoe", Email: "other@a.com", Password: "Changed1"},
		{Username: "amy", Email: "amy@a.com", Password: "pw", Role: "manager"},
	}
	require.NoError(t, seeds.SeedEmployees(ctx, d, again, zap.NewNop()))

	var jdoe employee.Employee
	require.NoError(t, d.Where("username = ?", "jdoe").Take(&jdoe).Error)
	assert.Equal(t, "jdoe@a.com", jdoe.Email)
	assert.True(t, password.Verify("Secret1", jdoe.PasswordHash))

	var count int64
	require.NoError(t, d.Model(&employee.Employee{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSeedEmployees_InvalidEntryWritesNothing(t *testing.T) {
	d := newTestDB(t)

	entries := []seeds.EmployeeSeed{
		{Username: "ok", Email: "ok@a.com", Password: "pw"},
		{Username: "bad", Email: "bad@a.com", Password: "pw", Role: "owner"},
	}
	err := seeds.SeedEmployees(context.Background(), d, entries, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employees[1]")

	var count int64
	require.NoError(t, d.Model(&employee.Employee{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeedAll_DatabaseErrorRollsBack(t *testing.T) {
	d := newTestDB(t)

	// Both entries validate; the second collides on the unique email index.
	f := &seeds.File{Employees: []seeds.EmployeeSeed{
		{Username: "first", Email: "shared@a.com", Password: "pw"},
		{Username: "second", Email: "shared@a.com", Password: "pw"},
	}}
	err := seeds.SeedAll(context.Background(), d, f, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second")

	var count int64
	require.NoError(t, d.Model(&employee.Employee{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeedAll_TruckFailureKeepsEmployeesOut(t *testing.T) {
	d := newTestDB(t)

	f := &seeds.File{
		Employees: []seeds.EmployeeSeed{{Username: "jdoe", Email: "jdoe@a.com", Password: "Secret1"}},
		Trucks:    []seeds.TruckSeed{{TruckNumber: "T-1", LicensePlate: "ABC123", Status: "parked"}},
	}
	err := seeds.SeedAll(context.Background(), d, f, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trucks[0]")

	var employees, trucks int64
	require.NoError(t, d.Model(&employee.Employee{}).Count(&employees).Error)
	require.NoError(t, d.Model(&fleet.Truck{}).Count(&trucks).Error)
	assert.Zero(t, employees)
	assert.Zero(t, trucks)
}

func TestEmployeeSeed_Validation(t *testing.T) {
	tests := []struct {
		name string
		seed seeds.EmployeeSeed
	}{
		{"no username", seeds.EmployeeSeed{Email: "a@a.com", Password: "pw"}},
		{"no email", seeds.EmployeeSeed{Username: "a", Password: "pw"}},
		{"no password", seeds.EmployeeSeed{Username: "a", Email: "a@a.com"}},
		{"both passwords", seeds.EmployeeSeed{Username: "a", Email: "a@a.com", Password: "pw", PasswordHash: password.Hash("pw")}},
		{"malformed hash", seeds.EmployeeSeed{Username: "a", Email: "a@a.com", PasswordHash: "nope"}},
		{"bad role", seeds.EmployeeSeed{Username: "a", Email: "a@a.com", Password: "pw", Role: "Admin"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.seed.Employee()
			assert.Error(t, err)
		})
	}
}

func TestEmployeeSeed_Defaults(t *testing.T) {
	e, err := seeds.EmployeeSeed{Username: " sam ", Email: "sam@a.com", Password: "pw"}.Employee()
	require.NoError(t, err)
	assert.Equal(t, "sam", e.Username)
	assert.Equal(t, employee.RoleDriver, e.Role)
	assert.True(t, e.IsActive)

	e, err = seeds.EmployeeSeed{Username: "sam", Email: "sam@a.com", Password: "pw", IsActive: boolPtr(false)}.Employee()
	require.NoError(t, err)
	assert.False(t, e.IsActive)
}

func TestSeedTrucks(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	entries := []seeds.TruckSeed{
		{TruckNumber: "MT-1", LicensePlate: "GA-1"},
		{TruckNumber: "MT-2", LicensePlate: "GA-2", Status: "offline"},
	}
	require.NoError(t, seeds.SeedTrucks(ctx, d, entries, zap.NewNop()))
	require.NoError(t, seeds.SeedTrucks(ctx, d, entries, zap.NewNop()))

	trucks, err := fleet.NewStore(d).List(ctx, "")
	require.NoError(t, err)
	require.Len(t, trucks, 2)
	assert.Equal(t, fleet.StatusIdle, trucks[0].Status)
	assert.Equal(t, fleet.StatusOffline, trucks[1].Status)

	err = seeds.SeedTrucks(ctx, d, []seeds.TruckSeed{{TruckNumber: "MT-3", LicensePlate: "GA-3", Status: "parked"}}, zap.NewNop())
	assert.Error(t, err)
}
