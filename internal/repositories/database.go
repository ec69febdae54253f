package repository

import (
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/config"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB *sql.DB
}

func New(cfg *config.Config) (*Repository, *BookingHistoryRepository, error) {

	db, err := sql.Open("postgres", cfg.Database.GetDSN())

	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	postgresInstance := &Repository{DB: db}
	historyRepo := NewBookingHistoryRepo(db)

	return postgresInstance, historyRepo, nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
