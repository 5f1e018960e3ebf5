package fleet

import "time"

type Status string

const (
	StatusInTransit   Status = "in-transit"
	StatusIdle        Status = "idle"
	StatusMaintenance Status = "maintenance"
	StatusOffline     Status = "offline"
)

// Statuses lists every truck status in display order.
var Statuses = []Status{StatusInTransit, StatusIdle, StatusMaintenance, StatusOffline}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type Truck struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TruckNumber     string    `gorm:"size:20;not null;uniqueIndex" json:"truckNumber"`
	LicensePlate    string    `gorm:"size:20;not null" json:"licensePlate"`
	Model           *string   `gorm:"size:100" json:"model"`
	Year            *int      `json:"year"`
	Status          Status    `gorm:"size:20;not null;default:'idle';index" json:"status"`
	Latitude        *float64  `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude       *float64  `gorm:"type:decimal(11,8)" json:"longitude"`
	CurrentLocation *string   `json:"currentLocation"`
	Destination     *string   `json:"destination"`
	Driver          *string   `gorm:"size:100" json:"driver"`
	Phone           *string   `gorm:"size:20" json:"phone"`
	LastUpdated     time.Time `gorm:"autoUpdateTime" json:"lastUpdated"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (Truck) TableName() string { return "trucks" }
