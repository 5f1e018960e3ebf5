package employee

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MemorialTransportation/web-backend/internal/db"
)

// ErrNotFound means the lookup produced no record. An unreachable store also
// reports ErrNotFound so callers cannot tell the two apart.
var ErrNotFound = errors.New("employee not found")

// Directory finds credential records by username.
type Directory interface {
	FindByUsername(ctx context.Context, username string) (*Employee, error)
}

// GormDirectory is the Directory backed by the employees table.
type GormDirectory struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewGormDirectory(d *gorm.DB, log *zap.Logger) *GormDirectory {
	return &GormDirectory{db: d, log: log.Named("directory")}
}

// FindByUsername matches username exactly, including case.
func (d *GormDirectory) FindByUsername(ctx context.Context, username string) (*Employee, error) {
	if d.db == nil {
		return nil, ErrNotFound
	}

	var e Employee
	err := d.db.WithContext(ctx).Where("username = ?", username).Take(&e).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case db.IsUnavailable(err):
		d.log.Warn("employee directory unavailable", zap.Error(err))
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("querying employees: %w", err)
	}

	// A case-insensitive collation must not widen the match.
	if e.Username != username {
		return nil, ErrNotFound
	}
	return &e, nil
}
