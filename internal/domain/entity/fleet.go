package entity

import "time"

// Shipment modes for the logistics stage.
const (
	ShipmentThirdParty       = "third_party"
	ShipmentLogisticsPartner = "logistics_partner"
	ShipmentOwnFleet         = "own_fleet"
)

// Vehicle belongs to a store's own fleet. Only persisted when shipment
// mode is own_fleet.
type Vehicle struct {
	ID          string
	CompanyID   string
	StoreID     string
	PlateNumber string
	Model       string
	FuelType    string
	CapacityKg  int
	CreatedAt   time.Time
}

// Driver operates a fleet vehicle. VehicleID may be empty when the driver is
// not yet assigned to a specific vehicle.
type Driver struct {
	ID            string
	CompanyID     string
	StoreID       string
	VehicleID     string
	Name          string
	Phone         string
	LicenseNumber string
	CreatedAt     time.Time
}
