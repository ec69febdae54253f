package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/cache"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/config"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/errors"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/gateway"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
)

// CatalogService proxies the backend hotel catalog through a read-through
// cache. Cache trouble is logged and degraded to a direct backend call.
type CatalogService struct {
	backend gateway.Client
	cache   cache.Cache
	cfg     *config.CacheConfig
}

func NewCatalogService(backend gateway.Client, cacheStore cache.Cache, cfg *config.CacheConfig) *CatalogService {
	return &CatalogService{backend: backend, cache: cacheStore, cfg: cfg}
}

func (s *CatalogService) ListHotels(ctx context.Context) ([]models.Hotel, error) {

	key := cache.Key(cache.HotelListKeyPrefix, "all")

	var hotels []models.Hotel

	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, key, &hotels); err != nil {
			slog.Warn("Hotel list cache read failed", slog.String("error", err.Error()))
		} else if hit {
			return hotels, nil
		}
	}

	if err := s.backend.Get(ctx, "/hotels", &hotels); err != nil {
		return nil, upstream(err, "Failed to fetch hotels")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, hotels, s.cfg.HotelTTL); err != nil {
			slog.Warn("Hotel list cache write failed", slog.String("error", err.Error()))
		}
	}

	return hotels, nil
}

func (s *CatalogService) GetHotel(ctx context.Context, id int64) (*models.Hotel, error) {

	key := cache.Key(cache.HotelKeyPrefix, strconv.FormatInt(id, 10))

	var hotel models.Hotel

	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, key, &hotel); err != nil {
			slog.Warn("Hotel cache read failed", slog.String("error", err.Error()))
		} else if hit {
			return &hotel, nil
		}
	}

	if err := s.backend.Get(ctx, fmt.Sprintf("/hotels/%d", id), &hotel); err != nil {
		return nil, upstream(err, "Failed to fetch hotel")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, hotel, s.cfg.HotelTTL); err != nil {
			slog.Warn("Hotel cache write failed", slog.String("error", err.Error()))
		}
	}

	return &hotel, nil
}

// upstream maps a gateway failure onto the error taxonomy, preserving the
// backend's message and a 404 when it sent one.
func upstream(err error, fallback string) error {

	if statusErr, ok := err.(*gateway.StatusError); ok {

		if statusErr.StatusCode == 404 {
			return errors.NotFoundError(statusErr.Message).WithError(err)
		}

		return errors.UpstreamError(statusErr.Message).WithError(err)
	}

	return errors.UpstreamError(fallback).WithError(err)
}
