package fleet

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrInvalidStatus = errors.New("invalid truck status")

// Store reads trucks. A Store without a database serves an empty fleet.
type Store struct {
	db *gorm.DB
}

func NewStore(d *gorm.DB) *Store {
	return &Store{db: d}
}

// Init creates or updates the trucks table.
func Init(d *gorm.DB) error {
	if err := d.AutoMigrate(&Truck{}); err != nil {
		return fmt.Errorf("migrating trucks: %w", err)
	}
	return nil
}

func (s *Store) Demo() bool { return s.db == nil }

// List returns trucks ordered by truck number, optionally filtered by status.
func (s *Store) List(ctx context.Context, status Status) ([]Truck, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	trucks := []Truck{}
	if s.db == nil {
		return trucks, nil
	}

	q := s.db.WithContext(ctx).Order("truck_number")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&trucks).Error; err != nil {
		return nil, fmt.Errorf("listing trucks: %w", err)
	}
	return trucks, nil
}

// Summary counts trucks per status. Every status is present in the result.
func (s *Store) Summary(ctx context.Context) (map[Status]int64, error) {
	counts := make(map[Status]int64, len(Statuses))
	for _, st := range Statuses {
		counts[st] = 0
	}
	if s.db == nil {
		return counts, nil
	}

	var rows []struct {
		Status Status
		Count  int64
	}
	err := s.db.WithContext(ctx).
		Model(&Truck{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("summarizing trucks: %w", err)
	}

	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
