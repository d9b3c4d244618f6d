package models

import "time"

// EquipmentType is the category of a piece of equipment.
type EquipmentType string

const (
	EquipmentCardio             EquipmentType = "CARDIO"
	EquipmentStrength           EquipmentType = "STRENGTH"
	EquipmentFlexibility        EquipmentType = "FLEXIBILITY"
	EquipmentWeightTraining     EquipmentType = "WEIGHT_TRAINING"
	EquipmentFunctionalTraining EquipmentType = "FUNCTIONAL_TRAINING"
	EquipmentSports             EquipmentType = "SPORTS_EQUIPMENT"
)

// EquipmentStatus is the operational state of a piece of equipment.
type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentInUse       EquipmentStatus = "IN_USE"
	EquipmentMaintenance EquipmentStatus = "MAINTENANCE"
	EquipmentOutOfOrder  EquipmentStatus = "OUT_OF_ORDER"
	EquipmentRetired     EquipmentStatus = "RETIRED"
)

// Equipment is a tracked machine or asset on the gym floor.
type Equipment struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description,omitempty"`
	Type                EquipmentType   `json:"type"`
	Status              EquipmentStatus `json:"status"`
	PurchasePrice       float64         `json:"purchasePrice"`
	PurchaseDate        time.Time       `json:"purchaseDate"`
	LastMaintenanceDate *time.Time      `json:"lastMaintenanceDate,omitempty"`
	NextMaintenanceDate *time.Time      `json:"nextMaintenanceDate,omitempty"`
	Location            string          `json:"location,omitempty"`
	SerialNumber        string          `json:"serialNumber,omitempty"`
	WarrantyExpiry      *time.Time      `json:"warrantyExpiry,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// NeedsMaintenance reports whether the next scheduled maintenance is due.
func (e Equipment) NeedsMaintenance() bool {
	if e.Status == EquipmentMaintenance || e.Status == EquipmentOutOfOrder {
		return true
	}
	return e.NextMaintenanceDate != nil && !time.Now().Before(*e.NextMaintenanceDate)
}
