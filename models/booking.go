package models

// Booking is stored exactly as the client sent it. Only "status" is ever
// rewritten by the server.
type Booking map[string]interface{}

// Well-known booking keys.
const (
	BookingIDField     = "_id"
	BookingEmailField  = "email"
	BookingStatusField = "status"
)

// Email returns the booking owner's email, or "" when absent or not a string.
func (b Booking) Email() string {
	email, _ := b[BookingEmailField].(string)
	return email
}

// BookingStatusUpdate is the PATCH /bookings/:id body.
type BookingStatusUpdate struct {
	Status string `json:"status"`
}
