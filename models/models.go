package models

// Reservation lifecycle statuses as the console displays them. The remote API
// speaks uppercase on the wire; records are normalized to these values on read.
const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// Accommodation is a lodging listing managed through the console.
type Accommodation struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Reservation is the canonical record shape the console works with. The remote
// API is inconsistent about field names; repository normalization maps every
// observed server shape into this one.
//
// CheckIn and CheckOut are ISO dates (YYYY-MM-DD). CheckOut is an exclusive
// end: the guest leaves that day, so the stay covers [CheckIn, CheckOut).
type Reservation struct {
	ID                string  `json:"id"`
	AccommodationID   string  `json:"accommodationId"`
	AccommodationName string  `json:"accommodationName"`
	Address           string  `json:"address,omitempty"`
	GuestName         string  `json:"guestName"`
	GuestEmail        string  `json:"guestEmail"`
	CheckIn           string  `json:"checkIn"`
	CheckOut          string  `json:"checkOut"`
	Status            string  `json:"status"`
	TotalAmount       float64 `json:"totalAmount"`
	Guests            int     `json:"guests"`
	UserID            string  `json:"user_id,omitempty"`
}

// User is a staff identity resolved from the remote user listing.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
