package store_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/store"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLines() []models.CartLine {
	return []models.CartLine{
		{
			HotelID:    1,
			RoomTypeID: 3,
			Hotel:      "Grand Palace",
			RoomType:   "Deluxe",
			CheckIn:    "2026-03-01",
			CheckOut:   "2026-03-03",
			Guests:     2,
			Rooms:      1,
			Price:      4000,
		},
	}
}

func TestRedisCartStore_Load(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	key := "cart:" + customerID.String()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		cartStore := store.NewRedisCartStore(client)

		data, err := json.Marshal(sampleLines())
		require.NoError(t, err)

		mock.ExpectGet(key).SetVal(string(data))

		// Act
		lines, err := cartStore.Load(ctx, customerID)

		// Assert
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "Grand Palace", lines[0].Hotel)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Absent Key Is An Empty Cart", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		cartStore := store.NewRedisCartStore(client)

		mock.ExpectGet(key).RedisNil()

		// Act
		lines, err := cartStore.Load(ctx, customerID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, lines)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Malformed Data Is Discarded", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		cartStore := store.NewRedisCartStore(client)

		mock.ExpectGet(key).SetVal("{not json")

		// Act
		lines, err := cartStore.Load(ctx, customerID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, lines)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		cartStore := store.NewRedisCartStore(client)

		mock.ExpectGet(key).SetErr(assert.AnError)

		// Act
		lines, err := cartStore.Load(ctx, customerID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, lines)
	})
}

func TestRedisCartStore_Save(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	key := "cart:" + customerID.String()

	t.Run("Success - Persists And Notifies", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		cartStore := store.NewRedisCartStore(client)
		events := cartStore.Subscribe()

		lines := sampleLines()
		data, err := json.Marshal(lines)
		require.NoError(t, err)

		mock.ExpectSet(key, data, 0).SetVal("OK")

		// Act
		err = cartStore.Save(ctx, customerID, lines)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())

		select {
		case event := <-events:
			assert.Equal(t, customerID, event.CustomerID)
		default:
			t.Fatal("expected a cart event after save")
		}
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		cartStore := store.NewRedisCartStore(client)
		events := cartStore.Subscribe()

		lines := sampleLines()
		data, err := json.Marshal(lines)
		require.NoError(t, err)

		mock.ExpectSet(key, data, 0).SetErr(assert.AnError)

		// Act
		err = cartStore.Save(ctx, customerID, lines)

		// Assert
		require.Error(t, err)

		select {
		case <-events:
			t.Fatal("no event may be published on a failed save")
		default:
		}
	})
}

func TestRedisCartStore_Clear(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	key := "cart:" + customerID.String()

	t.Run("Success - Deletes And Notifies", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		cartStore := store.NewRedisCartStore(client)
		events := cartStore.Subscribe()

		mock.ExpectDel(key).SetVal(1)

		// Act
		err := cartStore.Clear(ctx, customerID)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())

		select {
		case event := <-events:
			assert.Equal(t, customerID, event.CustomerID)
		default:
			t.Fatal("expected a cart event after clear")
		}
	})
}
