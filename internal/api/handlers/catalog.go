package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/api/middleware"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/errors"
	service "github.com/aaravmahajanofficial/hotel-booking-platform/internal/services"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/utils/response"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListHotels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		hotels, err := h.catalogService.ListHotels(r.Context())
		if err != nil {
			logger.Error("Failed to list hotels", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, hotels)
	}
}

func (h *CatalogHandler) GetHotel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid hotel id"))
			return
		}

		hotel, err := h.catalogService.GetHotel(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get hotel", slog.Int64("hotelId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, hotel)
	}
}
