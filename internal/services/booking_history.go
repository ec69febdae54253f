package service

import (
	"context"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/errors"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
	"github.com/google/uuid"
)

type BookingHistoryReader interface {
	ListByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.BookingRecord, int, error)
}

type BookingHistoryService struct {
	repo BookingHistoryReader
}

func NewBookingHistoryService(repo BookingHistoryReader) *BookingHistoryService {
	return &BookingHistoryService{repo: repo}
}

func (s *BookingHistoryService) ListBookings(ctx context.Context, customerID uuid.UUID, page, size int) (*models.BookingHistoryResponse, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 10
	}

	records, total, err := s.repo.ListByCustomer(ctx, customerID, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch bookings").WithError(err)
	}

	return &models.BookingHistoryResponse{
		Bookings: records,
		Total:    total,
		Page:     page,
		Size:     size,
	}, nil
}
