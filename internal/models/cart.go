package models

import "time"

// TaxRate applied on the cart subtotal at checkout.
const TaxRate = 0.18

// CartLine is one prospective room booking awaiting confirmation. Lines are
// created by the cart endpoints and only read and cleared by checkout.
type CartLine struct {
	HotelID    int64   `json:"hotelId"`
	RoomTypeID int64   `json:"roomTypeId"`
	Hotel      string  `json:"hotel,omitempty"`
	RoomType   string  `json:"roomType,omitempty"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   string  `json:"checkOut"`
	Guests     int     `json:"guests"`
	Rooms      int     `json:"rooms"`
	Price      float64 `json:"price"`
}

type Cart struct {
	Lines     []CartLine `json:"lines"`
	Subtotal  float64    `json:"subtotal"`
	Taxes     float64    `json:"taxes"`
	Total     float64    `json:"total"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type AddCartLineRequest struct {
	HotelID    int64   `json:"hotelId" validate:"required"`
	RoomTypeID int64   `json:"roomTypeId" validate:"required"`
	Hotel      string  `json:"hotel"`
	RoomType   string  `json:"roomType"`
	CheckIn    string  `json:"checkIn" validate:"required"`
	CheckOut   string  `json:"checkOut" validate:"required"`
	Guests     int     `json:"guests" validate:"omitempty,min=1"`
	Rooms      int     `json:"rooms" validate:"omitempty,min=1"`
	Price      float64 `json:"price" validate:"required,gt=0"`
}

// NewCart computes the totals for a line sequence. Taxes are a flat rate on
// the subtotal.
func NewCart(lines []CartLine) *Cart {

	var subtotal float64

	for _, line := range lines {
		subtotal += line.Price
	}

	taxes := subtotal * TaxRate

	return &Cart{
		Lines:     lines,
		Subtotal:  subtotal,
		Taxes:     taxes,
		Total:     subtotal + taxes,
		UpdatedAt: time.Now(),
	}
}
