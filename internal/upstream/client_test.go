package upstream_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yankhoury/homeplate/internal/models"
	"github.com/yankhoury/homeplate/internal/upstream"
)

func TestCreateOrder(t *testing.T) {
	t.Run("Success - Nested Data Envelope", func(t *testing.T) {
		// Arrange
		var gotAuth string
		var gotPayload models.CreateOrderPayload

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"data": {"order": {"_id": "order-1", "status": "reçu"}}}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL, 5*time.Second)
		ctx := upstream.WithToken(context.Background(), "token-123")

		// Act
		raw, err := client.CreateOrder(ctx, &models.CreateOrderPayload{
			CookerID:       "seller-1",
			PaymentMethod:  "cash",
			DeliveryOption: models.DeliveryOptionPickup,
			OrderItems:     []models.OrderItemPayload{{Meal: "meal-1", Quantity: 2, Price: 1000}},
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "order-1", raw.OrderID())
		assert.Equal(t, "Bearer token-123", gotAuth)
		assert.Equal(t, "seller-1", gotPayload.CookerID)
		assert.Equal(t, "meal-1", gotPayload.OrderItems[0].Meal)
	})

	t.Run("Success - Flat Envelope", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"order": {"id": "order-2"}}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL, 5*time.Second)

		// Act
		raw, err := client.CreateOrder(context.Background(), &models.CreateOrderPayload{})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "order-2", raw.OrderID())
	})

	t.Run("Failure - Missing Order In Response", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL, 5*time.Second)

		// Act
		raw, err := client.CreateOrder(context.Background(), &models.CreateOrderPayload{})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, raw)
	})

	t.Run("Failure - Server Message Is Preserved", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message": "Cuisinier indisponible"}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL, 5*time.Second)

		// Act
		_, err := client.CreateOrder(context.Background(), &models.CreateOrderPayload{})

		// Assert
		assert.Error(t, err)
		var upstreamErr *upstream.UpstreamError
		assert.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, http.StatusBadRequest, upstreamErr.StatusCode)
		assert.Equal(t, "Cuisinier indisponible", upstreamErr.Message)
	})
}

func TestMyOrders(t *testing.T) {
	t.Run("Success - Both Envelope Shapes", func(t *testing.T) {
		for name, body := range map[string]string{
			"nested": `{"data": {"orders": [{"_id": "a"}, {"_id": "b"}]}}`,
			"flat":   `{"orders": [{"_id": "a"}, {"_id": "b"}]}`,
		} {
			t.Run(name, func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "/orders/mine", r.URL.Path)
					w.Write([]byte(body))
				}))
				defer server.Close()

				client := upstream.NewClient(server.URL, 5*time.Second)

				orders, err := client.MyOrders(context.Background())
				assert.NoError(t, err)
				assert.Len(t, orders, 2)
			})
		}
	})
}

func TestCancelOrder(t *testing.T) {
	t.Run("Success - Patches The Cancel Path", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/orders/order-1/cancel", r.URL.Path)
			w.Write([]byte(`{"status": "ok"}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL, 5*time.Second)

		// Act + Assert
		assert.NoError(t, client.CancelOrder(context.Background(), "order-1"))
	})

	t.Run("Failure - Error Envelope Under error Key", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error": "already delivered"}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL, 5*time.Second)

		// Act
		err := client.CancelOrder(context.Background(), "order-1")

		// Assert
		var upstreamErr *upstream.UpstreamError
		assert.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, "already delivered", upstreamErr.Message)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("Success - Sends Target Status", func(t *testing.T) {
		// Arrange
		var got map[string]string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/orders/order-1/status", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL, 5*time.Second)

		// Act
		err := client.UpdateOrderStatus(context.Background(), "order-1", models.StatusAccepted)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "accepted", got["status"])
	})
}
