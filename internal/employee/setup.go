package employee

import (
	"fmt"

	"gorm.io/gorm"
)

// Init creates or updates the employees table.
func Init(d *gorm.DB) error {
	if err := d.AutoMigrate(&Employee{}); err != nil {
		return fmt.Errorf("migrating employees: %w", err)
	}
	return nil
}
