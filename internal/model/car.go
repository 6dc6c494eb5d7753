package model

// Car represents a vehicle listed for sale. Each car belongs to one
// seller and has at most one auction; deleting the seller removes the
// car, and deleting the car removes its auction.
//
// Fields:
//
//	ID           – primary key identifier.
//	Brand        – manufacturer name (e.g. "Toyota").
//	Model        – model name (e.g. "Camry").
//	Year         – production date, serialized as "2006-01-02".
//	FuelType     – localized fuel type enum value.
//	Transmission – localized transmission enum value.
//	Mileage      – odometer reading in kilometers.
//	Price        – asking price, DECIMAL(10,2) in the database.
//	Description  – free-form listing text.
//	Image        – opaque image reference (URL or path).
//	SellerID     – owning user.
type Car struct {
	ID           int64        `json:"id"`           // car.id
	Brand        string       `json:"brand"`        // car.brand
	Model        string       `json:"model"`        // car.model
	Year         Date         `json:"year"`         // car.year (DATE)
	FuelType     FuelType     `json:"fuel_type"`    // car.fuel_type
	Transmission Transmission `json:"transmission"` // car.transmission
	Mileage      int64        `json:"mileage"`      // car.mileage
	Price        float64      `json:"price"`        // car.price
	Description  string       `json:"description"`  // car.description
	Image        string       `json:"image"`        // car.image
	SellerID     int64        `json:"seller_id"`    // car.seller_id
}
