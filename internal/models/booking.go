package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingRequest is the payload the booking backend accepts: one cart line
// merged with the shared guest details. Derived at submission time, never
// stored.
type BookingRequest struct {
	HotelID        int64  `json:"hotelId"`
	RoomTypeID     int64  `json:"roomTypeId"`
	CheckInDate    string `json:"checkInDate"`
	CheckOutDate   string `json:"checkOutDate"`
	Adults         int    `json:"adults"`
	Children       int    `json:"children"`
	Rooms          int    `json:"rooms"`
	GuestFirstName string `json:"guestFirstName"`
	GuestLastName  string `json:"guestLastName"`
	GuestEmail     string `json:"guestEmail"`
	GuestPhone     string `json:"guestPhone"`
}

// BookingConfirmation is the backend's representation of a created booking.
// The backend is the only authority on whether a reservation exists.
type BookingConfirmation struct {
	ID     int64  `json:"id"`
	Status string `json:"status,omitempty"`
}

// InvoiceRequest mirrors the invoice service's contract (camelCase, .NET
// style field names on the wire).
type InvoiceRequest struct {
	GuestName        string  `json:"guestName"`
	HotelName        string  `json:"hotelName"`
	RoomType         string  `json:"roomType"`
	CheckInDate      string  `json:"checkInDate"`
	CheckOutDate     string  `json:"checkOutDate"`
	TotalPrice       float64 `json:"totalPrice"`
	BookingReference string  `json:"bookingReference"`
	GuestEmail       string  `json:"guestEmail"`
}

// BookingRecord is the local history row written after a confirmed checkout.
type BookingRecord struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Reference  string    `json:"reference"`
	Hotel      string    `json:"hotel"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	LineCount  int       `json:"line_count"`
	Total      float64   `json:"total"`
	GuestEmail string    `json:"guest_email"`
	CreatedAt  time.Time `json:"created_at"`
}

type BookingHistoryResponse struct {
	Bookings []BookingRecord `json:"bookings"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	Size     int             `json:"size"`
}
