package seeds

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MemorialTransportation/web-backend/internal/employee"
)

// SeedEmployees validates every entry before writing any of them.
func SeedEmployees(ctx context.Context, d *gorm.DB, entries []EmployeeSeed, log *zap.Logger) error {
	records := make([]employee.Employee, 0, len(entries))
	for i, s := range entries {
		e, err := s.Employee()
		if err != nil {
			return fmt.Errorf("employees[%d]: %w", i, err)
		}
		records = append(records, e)
	}

	created := 0
	for _, e := range records {
		var existing employee.Employee
		err := d.WithContext(ctx).Where("username = ?", e.Username).Take(&existing).Error
		if err == nil {
			log.Info("employee exists, skipping", zap.String("username", e.Username))
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("DB error on employee %s: %w", e.Username, err)
		}

		if err := d.WithContext(ctx).Create(&e).Error; err != nil {
			return fmt.Errorf("failed to create employee %s: %w", e.Username, err)
		}
		created++
	}

	log.Info("seeded employees", zap.Int("created", created), zap.Int("skipped", len(records)-created))
	return nil
}
