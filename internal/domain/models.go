package domain

// Equipment status values. An item is in exactly one of these at any time.
const (
	StatusAvailable   = "available"
	StatusRented      = "rented"
	StatusMaintenance = "maintenance"
)

type Equipment struct {
	ID          string  `db:"id"` // ME0001, ME0002, ...
	Brand       string  `db:"brand"`
	Model       string  `db:"model"`
	Description string  `db:"description"`
	Status      string  `db:"status"` // available | rented | maintenance
	Price       float64 `db:"price"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

type Customer struct {
	ID        string `db:"id"` // MC0001, MC0002, ...
	Name      string `db:"name"`
	Phone     string `db:"phone"`
	Email     string `db:"email"`
	CreatedAt string `db:"created_at"`
}

// Rental carries a snapshot of the customer taken at creation time; editing
// the customer afterwards does not change the agreement.
type Rental struct {
	ID            string  `db:"id"` // RE-0001, RE-0002, ...
	CustomerID    string  `db:"customer_id"`
	CustomerName  string  `db:"customer_name"`
	CustomerPhone string  `db:"customer_phone"`
	CustomerEmail string  `db:"customer_email"`
	StartDate     string  `db:"start_date"` // YYYY-MM-DD
	EndDate       string  `db:"end_date"`   // YYYY-MM-DD
	Subtotal      float64 `db:"subtotal"`
	TaxIncluded   bool    `db:"tax_included"`
	Total         float64 `db:"total"`
	CreatedAt     string  `db:"created_at"`
}

type RentalItem struct {
	RentalID    string  `db:"rental_id"`
	EquipmentID string  `db:"equipment_id"`
	Price       float64 `db:"price"` // equipment base price at creation
}

type Availability struct {
	Status string `json:"status"` // AVAILABLE | RENTED | MAINTENANCE | UNKNOWN
	ID     string `json:"id,omitempty"`
}
