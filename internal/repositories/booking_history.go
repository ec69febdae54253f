package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/utils"
	"github.com/google/uuid"
)

// BookingHistoryRepository records confirmed checkouts locally so the
// bookings page does not have to re-query the backend for every visit.
type BookingHistoryRepository struct {
	DB *sql.DB
}

func NewBookingHistoryRepo(db *sql.DB) *BookingHistoryRepository {
	return &BookingHistoryRepository{DB: db}
}

func (r *BookingHistoryRepository) CreateRecord(ctx context.Context, record *models.BookingRecord) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO booking_history (id, customer_id, reference, hotel, check_in, check_out, line_count, total, guest_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		record.ID, record.CustomerID, record.Reference, record.Hotel,
		record.CheckIn, record.CheckOut, record.LineCount, record.Total, record.GuestEmail,
	).Scan(&record.CreatedAt)
}

func (r *BookingHistoryRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.BookingRecord, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM booking_history WHERE customer_id = $1`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, customerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count booking records: %w", err)
	}

	query := `
		SELECT id, customer_id, reference, hotel, check_in, check_out, line_count, total, guest_email, created_at
		FROM booking_history
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, customerID, size, (page-1)*size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query booking records: %w", err)
	}

	defer rows.Close()

	records := []models.BookingRecord{}

	for rows.Next() {

		var record models.BookingRecord

		err := rows.Scan(&record.ID, &record.CustomerID, &record.Reference, &record.Hotel,
			&record.CheckIn, &record.CheckOut, &record.LineCount, &record.Total, &record.GuestEmail, &record.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan booking record: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate booking records: %w", err)
	}

	return records, total, nil
}
