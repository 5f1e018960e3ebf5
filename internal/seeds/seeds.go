// Package seeds provisions employees and trucks from a YAML file. Records that
// already exist are left untouched.
package seeds

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MemorialTransportation/web-backend/internal/employee"
	"github.com/MemorialTransportation/web-backend/internal/fleet"
	"github.com/MemorialTransportation/web-backend/internal/password"
)

type File struct {
	Employees []EmployeeSeed `yaml:"employees"`
	Trucks    []TruckSeed    `yaml:"trucks"`
}

// EmployeeSeed carries either a plaintext password, hashed on import, or an
// already encoded passwordHash.
type EmployeeSeed struct {
	Username     string  `yaml:"username"`
	Email        string  `yaml:"email"`
	Password     string  `yaml:"password"`
	PasswordHash string  `yaml:"passwordHash"`
	FirstName    *string `yaml:"firstName"`
	LastName     *string `yaml:"lastName"`
	Role         string  `yaml:"role"`
	IsActive     *bool   `yaml:"isActive"`
}

type TruckSeed struct {
	TruckNumber     string   `yaml:"truckNumber"`
	LicensePlate    string   `yaml:"licensePlate"`
	Model           *string  `yaml:"model"`
	Year            *int     `yaml:"year"`
	Status          string   `yaml:"status"`
	Latitude        *float64 `yaml:"latitude"`
	Longitude       *float64 `yaml:"longitude"`
	CurrentLocation *string  `yaml:"currentLocation"`
	Destination     *string  `yaml:"destination"`
	Driver          *string  `yaml:"driver"`
	Phone           *string  `yaml:"phone"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	var f File
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &f, nil
}

func (s EmployeeSeed) Employee() (employee.Employee, error) {
	username := strings.TrimSpace(s.Username)
	if username == "" {
		return employee.Employee{}, errors.New("username is required")
	}
	if strings.TrimSpace(s.Email) == "" {
		return employee.Employee{}, fmt.Errorf("employee %s: email is required", username)
	}

	var hash string
	switch {
	case s.Password != "" && s.PasswordHash != "":
		return employee.Employee{}, fmt.Errorf("employee %s: set password or passwordHash, not both", username)
	case s.Password != "":
		hash = password.Hash(s.Password)
	case password.WellFormed(s.PasswordHash):
		hash = s.PasswordHash
	default:
		return employee.Employee{}, fmt.Errorf("employee %s: a password or well-formed passwordHash is required", username)
	}

	role := employee.RoleDriver
	if s.Role != "" {
		role = employee.Role(s.Role)
	}
	if !role.Valid() {
		return employee.Employee{}, fmt.Errorf("employee %s: unknown role %q", username, s.Role)
	}

	active := true
	if s.IsActive != nil {
		active = *s.IsActive
	}

	return employee.Employee{
		Username:     username,
		Email:        strings.TrimSpace(s.Email),
		PasswordHash: hash,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Role:         role,
		IsActive:     active,
	}, nil
}

func (s TruckSeed) Truck() (fleet.Truck, error) {
	if s.TruckNumber == "" || s.LicensePlate == "" {
		return fleet.Truck{}, errors.New("truckNumber and licensePlate are required")
	}

	status := fleet.StatusIdle
	if s.Status != "" {
		status = fleet.Status(s.Status)
	}
	if !status.Valid() {
		return fleet.Truck{}, fmt.Errorf("truck %s: unknown status %q", s.TruckNumber, s.Status)
	}

	return fleet.Truck{
		TruckNumber:     s.TruckNumber,
		LicensePlate:    s.LicensePlate,
		Model:           s.Model,
		Year:            s.Year,
		Status:          status,
		Latitude:        s.Latitude,
		Longitude:       s.Longitude,
		CurrentLocation: s.CurrentLocation,
		Destination:     s.Destination,
		Driver:          s.Driver,
		Phone:           s.Phone,
	}, nil
}

// SeedAll runs in one transaction: a run that fails part way writes nothing.
func SeedAll(ctx context.Context, d *gorm.DB, f *File, log *zap.Logger) error {
	return d.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := SeedEmployees(ctx, tx, f.Employees, log); err != nil {
			return err
		}
		return SeedTrucks(ctx, tx, f.Trucks, log)
	})
}
