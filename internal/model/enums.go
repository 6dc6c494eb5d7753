package model

// Closed string enumerations shared by the persistence and validation
// layers. The fuel type and transmission values are localized display
// strings that travel verbatim over the wire and are stored as-is in
// their enum columns, so they must never be renamed.

// Role distinguishes sellers from buyers.
type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

// Valid reports whether the role is one of the allowed values.
func (r Role) Valid() bool {
	switch r {
	case RoleSeller, RoleBuyer:
		return true
	}
	return false
}

// FuelType is the car fuel type with its localized wire value.
type FuelType string

const (
	FuelHybrid   FuelType = "Гибрид"
	FuelElectric FuelType = "Электр"
	FuelGas      FuelType = "Газ"
	FuelDiesel   FuelType = "Дизель"
	FuelPetrol   FuelType = "Бензин"
)

// Valid reports whether the fuel type is one of the allowed values.
func (f FuelType) Valid() bool {
	switch f {
	case FuelHybrid, FuelElectric, FuelGas, FuelDiesel, FuelPetrol:
		return true
	}
	return false
}

// Transmission is the gearbox kind with its localized wire value.
type Transmission string

const (
	TransmissionManual    Transmission = "механика"
	TransmissionAutomatic Transmission = "автомат"
)

// Valid reports whether the transmission is one of the allowed values.
func (t Transmission) Valid() bool {
	switch t {
	case TransmissionManual, TransmissionAutomatic:
		return true
	}
	return false
}

// AuctionStatus is the lifecycle state of an auction. The system never
// transitions auctions on its own; the status is whatever the client
// last stored.
type AuctionStatus string

const (
	AuctionActive    AuctionStatus = "active"
	AuctionCompleted AuctionStatus = "completed"
	AuctionCanceled  AuctionStatus = "canceled"
)

// Valid reports whether the status is one of the allowed values.
func (s AuctionStatus) Valid() bool {
	switch s {
	case AuctionActive, AuctionCompleted, AuctionCanceled:
		return true
	}
	return false
}
