package service

import (
	"context"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/errors"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/store"
	"github.com/google/uuid"
)

// CartService manages the line sequence for the cart page. Checkout only
// reads and clears the cart; adding and removing lines lives here.
type CartService struct {
	carts store.CartStore
}

func NewCartService(carts store.CartStore) *CartService {
	return &CartService{carts: carts}
}

func (s *CartService) GetCart(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {

	lines, err := s.carts.Load(ctx, customerID)
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	return models.NewCart(lines), nil
}

func (s *CartService) AddLine(ctx context.Context, customerID uuid.UUID, req *models.AddCartLineRequest) (*models.Cart, error) {

	lines, err := s.carts.Load(ctx, customerID)
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	lines = append(lines, models.CartLine{
		HotelID:    req.HotelID,
		RoomTypeID: req.RoomTypeID,
		Hotel:      req.Hotel,
		RoomType:   req.RoomType,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Guests:     req.Guests,
		Rooms:      req.Rooms,
		Price:      req.Price,
	})

	if err := s.carts.Save(ctx, customerID, lines); err != nil {
		return nil, errors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	return models.NewCart(lines), nil
}

func (s *CartService) RemoveLine(ctx context.Context, customerID uuid.UUID, index int) (*models.Cart, error) {

	lines, err := s.carts.Load(ctx, customerID)
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	if index < 0 || index >= len(lines) {
		return nil, errors.BadRequestError("Cart line does not exist")
	}

	lines = append(lines[:index], lines[index+1:]...)

	if err := s.carts.Save(ctx, customerID, lines); err != nil {
		return nil, errors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	return models.NewCart(lines), nil
}

func (s *CartService) ClearCart(ctx context.Context, customerID uuid.UUID) error {

	if err := s.carts.Clear(ctx, customerID); err != nil {
		return errors.ThirdPartyError("Failed to clear cart").WithError(err)
	}

	return nil
}
