package seeds

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MemorialTransportation/web-backend/internal/fleet"
)

func SeedTrucks(ctx context.Context, d *gorm.DB, entries []TruckSeed, log *zap.Logger) error {
	records := make([]fleet.Truck, 0, len(entries))
	for i, s := range entries {
		t, err := s.Truck()
		if err != nil {
			return fmt.Errorf("trucks[%d]: %w", i, err)
		}
		records = append(records, t)
	}

	created := 0
	for _, t := range records {
		var existing fleet.Truck
		err := d.WithContext(ctx).Where("truck_number = ?", t.TruckNumber).Take(&existing).Error
		if err == nil {
			log.Info("truck exists, skipping", zap.String("truck_number", t.TruckNumber))
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("DB error on truck %s: %w", t.TruckNumber, err)
		}

		if err := d.WithContext(ctx).Create(&t).Error; err != nil {
			return fmt.Errorf("failed to create truck %s: %w", t.TruckNumber, err)
		}
		created++
	}

	log.Info("seeded trucks", zap.Int("created", created), zap.Int("skipped", len(records)-created))
	return nil
}
