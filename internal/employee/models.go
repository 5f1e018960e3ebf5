package employee

import (
	"strings"
	"time"

	"github.com/MemorialTransportation/web-backend/internal/session"
)

type Role string

const (
	RoleDriver     Role = "driver"
	RoleDispatcher Role = "dispatcher"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDriver, RoleDispatcher, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Employee is the credential record for one staff account.
type Employee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:320;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    *string   `json:"firstName"`
	LastName     *string   `json:"lastName"`
	Role         Role      `gorm:"size:20;not null;default:'driver'" json:"role"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Employee) TableName() string { return "employees" }

// Profile is the part of an Employee handed to the browser after login.
type Profile struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      Role    `json:"role"`
}

func (e *Employee) Profile() Profile {
	return Profile{
		ID:        e.ID,
		Username:  e.Username,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Role:      e.Role,
	}
}

func (p Profile) Token() session.Token {
	return session.Token{
		ID:        p.ID,
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Role:      string(p.Role),
	}
}

func ProfileFromToken(t session.Token) Profile {
	return Profile{
		ID:        t.ID,
		Username:  t.Username,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		Role:      Role(t.Role),
	}
}

// DisplayName joins first and last name, falling back to the username.
func (p Profile) DisplayName() string {
	var parts []string
	for _, s := range []*string{p.FirstName, p.LastName} {
		if s != nil && strings.TrimSpace(*s) != "" {
			parts = append(parts, strings.TrimSpace(*s))
		}
	}
	if len(parts) == 0 {
		return p.Username
	}
	return strings.Join(parts, " ")
}
