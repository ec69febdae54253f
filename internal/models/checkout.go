package models

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutStep string

const (
	StepGuestDetails CheckoutStep = "guest_details"
	StepPayment      CheckoutStep = "payment"
	StepConfirmed    CheckoutStep = "confirmed"
)

// GuestDetails is a single record shared across every line of one checkout
// session, prefilled from the authenticated user's profile.
type GuestDetails struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// PaymentDetails lives only for the duration of the payment request. It is
// never stored on the session, never logged and never sent upstream.
type PaymentDetails struct {
	CardNumber string `json:"card_number" validate:"required"`
	CardName   string `json:"card_name" validate:"required"`
	Expiry     string `json:"expiry" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
	SaveCard   bool   `json:"save_card"`
}

// CheckoutSession tracks one checkout attempt: current step, loading flag,
// completion flag and the display booking reference. Destroyed on completion
// or abandonment.
type CheckoutSession struct {
	ID         uuid.UUID    `json:"id"`
	CustomerID uuid.UUID    `json:"customer_id"`
	Step       CheckoutStep `json:"step"`
	Lines      []CartLine   `json:"lines"`
	Guest      GuestDetails `json:"guest"`
	Loading    bool         `json:"loading"`
	Complete   bool         `json:"complete"`
	BookingRef string       `json:"booking_ref,omitempty"`
	Subtotal   float64      `json:"subtotal"`
	Taxes      float64      `json:"taxes"`
	Total      float64      `json:"total"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type CheckoutResponse struct {
	Session *CheckoutSession `json:"session"`
}
