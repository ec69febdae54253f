package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, gateway.Client) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server, gateway.NewClientWithHTTP(server.URL, server.Client())
}

func TestTokenForwarding(t *testing.T) {

	t.Run("Attaches Bearer Header For JWT-Shaped Token", func(t *testing.T) {
		// Arrange
		var gotAuth string

		_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusNoContent)
		})

		ctx := gateway.WithToken(context.Background(), "aaa.bbb.ccc")

		// Act
		err := client.Get(ctx, "/hotels", nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Bearer aaa.bbb.ccc", gotAuth)
	})

	t.Run("Skips Header For Token Without Dot", func(t *testing.T) {
		// Arrange
		var gotAuth string

		_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusNoContent)
		})

		ctx := gateway.WithToken(context.Background(), "not-a-jwt")

		// Act
		err := client.Get(ctx, "/hotels", nil)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})

	t.Run("Skips Header Without Token", func(t *testing.T) {
		// Arrange
		var gotAuth string

		_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusNoContent)
		})

		// Act
		err := client.Get(context.Background(), "/hotels", nil)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})
}

func TestPost(t *testing.T) {

	t.Run("Success - Sends JSON And Decodes Response", func(t *testing.T) {
		// Arrange
		type echo struct {
			Name string `json:"name"`
		}

		_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/bookings", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var in echo
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(echo{Name: in.Name + "!"})
		})

		var out echo

		// Act
		err := client.Post(context.Background(), "/bookings", echo{Name: "grand"}, &out)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "grand!", out.Name)
	})

	t.Run("Success - Empty Body With Nil Out", func(t *testing.T) {
		// Arrange
		_, client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		})

		// Act
		err := client.Post(context.Background(), "/bookings", map[string]string{}, nil)

		// Assert
		require.NoError(t, err)
	})
}

func TestErrorNormalization(t *testing.T) {

	cases := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantMessage string
	}{
		{
			name:        "Prefers Message Field",
			status:      http.StatusBadRequest,
			contentType: "application/json",
			body:        `{"message":"Room unavailable","error":"ignored"}`,
			wantMessage: "Room unavailable",
		},
		{
			name:        "Falls Back To Error Field",
			status:      http.StatusConflict,
			contentType: "application/json",
			body:        `{"error":"Dates overlap an existing stay"}`,
			wantMessage: "Dates overlap an existing stay",
		},
		{
			name:        "Uses Plain Text Body",
			status:      http.StatusBadGateway,
			contentType: "text/plain",
			body:        "upstream offline",
			wantMessage: "upstream offline",
		},
		{
			name:        "Generic Message For Empty Body",
			status:      http.StatusInternalServerError,
			contentType: "application/json",
			body:        "",
			wantMessage: "Request failed with status 500",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			_, client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			// Act
			err := client.Get(context.Background(), "/hotels", nil)

			// Assert
			require.Error(t, err)

			var statusErr *gateway.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tc.status, statusErr.StatusCode)
			assert.Equal(t, tc.wantMessage, statusErr.Error())
		})
	}
}

func TestDelete(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		// Arrange
		var gotMethod, gotPath string

		_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		})

		// Act
		err := client.Delete(context.Background(), "/bookings/42", nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, gotMethod)
		assert.Equal(t, "/bookings/42", gotPath)
	})
}
