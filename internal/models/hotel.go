package models

// Hotel is the backend's catalog representation, passed through as-is by the
// catalog proxy.
type Hotel struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	City        string   `json:"city,omitempty"`
	Address     string   `json:"address,omitempty"`
	Description string   `json:"description,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	MinPrice    float64  `json:"minPrice,omitempty"`
}

type RoomType struct {
	ID       int64   `json:"id"`
	HotelID  int64   `json:"hotelId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Capacity int     `json:"capacity,omitempty"`
}
