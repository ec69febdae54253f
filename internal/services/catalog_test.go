package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/config"
	appErrors "github.com/aaravmahajanofficial/hotel-booking-platform/internal/errors"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/gateway"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
	service "github.com/aaravmahajanofficial/hotel-booking-platform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache keeps JSON-encoded entries in a map, close enough to the Redis
// implementation for read-through behavior.
type fakeCache struct {
	entries map[string][]byte
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, value any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}

	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(data, value)
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.entries[key] = data

	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)

	return nil
}

func catalogConfig() *config.CacheConfig {
	return &config.CacheConfig{HotelTTL: 5 * time.Minute, DefaultTTL: time.Minute}
}

func TestListHotels(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Miss Fetches And Caches", func(t *testing.T) {
		// Arrange
		backend := &stubGateway{
			getFn: func(path string, out any) error {
				assert.Equal(t, "/hotels", path)
				*(out.(*[]models.Hotel)) = []models.Hotel{{ID: 1, Name: "Grand Palace"}}
				return nil
			},
		}
		cacheStore := newFakeCache()
		svc := service.NewCatalogService(backend, cacheStore, catalogConfig())

		// Act
		hotels, err := svc.ListHotels(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, "Grand Palace", hotels[0].Name)
		assert.Contains(t, cacheStore.entries, "hotels:all")
	})

	t.Run("Success - Hit Skips The Backend", func(t *testing.T) {
		// Arrange
		calls := 0
		backend := &stubGateway{
			getFn: func(_ string, out any) error {
				calls++
				*(out.(*[]models.Hotel)) = []models.Hotel{{ID: 1, Name: "Grand Palace"}}
				return nil
			},
		}
		cacheStore := newFakeCache()
		svc := service.NewCatalogService(backend, cacheStore, catalogConfig())

		// Act
		_, err := svc.ListHotels(ctx)
		require.NoError(t, err)
		hotels, err := svc.ListHotels(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, 1, calls, "second read must be served from cache")
	})

	t.Run("Success - Cache Error Degrades To Backend", func(t *testing.T) {
		// Arrange
		backend := &stubGateway{
			getFn: func(_ string, out any) error {
				*(out.(*[]models.Hotel)) = []models.Hotel{{ID: 1, Name: "Grand Palace"}}
				return nil
			},
		}
		cacheStore := newFakeCache()
		cacheStore.getErr = assert.AnError
		svc := service.NewCatalogService(backend, cacheStore, catalogConfig())

		// Act
		hotels, err := svc.ListHotels(ctx)

		// Assert
		require.NoError(t, err)
		assert.Len(t, hotels, 1)
	})

	t.Run("Failure - Upstream Error Carries Message", func(t *testing.T) {
		// Arrange
		backend := &stubGateway{
			getFn: func(_ string, _ any) error {
				return &gateway.StatusError{StatusCode: 503, Message: "catalog offline"}
			},
		}
		svc := service.NewCatalogService(backend, newFakeCache(), catalogConfig())

		// Act
		_, err := svc.ListHotels(ctx)

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUpstreamError, appErr.Code)
		assert.Equal(t, "catalog offline", appErr.Message)
	})
}

func TestGetHotel(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		backend := &stubGateway{
			getFn: func(path string, out any) error {
				assert.Equal(t, "/hotels/7", path)
				*(out.(*models.Hotel)) = models.Hotel{ID: 7, Name: "Seaside Resort"}
				return nil
			},
		}
		cacheStore := newFakeCache()
		svc := service.NewCatalogService(backend, cacheStore, catalogConfig())

		// Act
		hotel, err := svc.GetHotel(ctx, 7)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Seaside Resort", hotel.Name)
		assert.Contains(t, cacheStore.entries, "hotel:7")
	})

	t.Run("Failure - Backend 404 Maps To Not Found", func(t *testing.T) {
		// Arrange
		backend := &stubGateway{
			getFn: func(_ string, _ any) error {
				return &gateway.StatusError{StatusCode: 404, Message: "Hotel not found"}
			},
		}
		svc := service.NewCatalogService(backend, newFakeCache(), catalogConfig())

		// Act
		_, err := svc.GetHotel(ctx, 99)

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Hotel not found", appErr.Message)
	})

	t.Run("Success - Works Without A Cache", func(t *testing.T) {
		// Arrange
		backend := &stubGateway{
			getFn: func(_ string, out any) error {
				*(out.(*models.Hotel)) = models.Hotel{ID: 7, Name: "Seaside Resort"}
				return nil
			},
		}
		svc := service.NewCatalogService(backend, nil, catalogConfig())

		// Act
		hotel, err := svc.GetHotel(ctx, 7)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Seaside Resort", hotel.Name)
	})
}
