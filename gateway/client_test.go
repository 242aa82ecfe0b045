package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacotown/models"
)

func TestList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"order_id": "ORD-2", "status": "confirmed"},
				{"order_id": "ORD-1", "status": "delivered"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	orders, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-2", orders[0].OrderID)
	assert.Equal(t, models.StatusDelivered, orders[1].Status)
}

func TestCreateSendsWireFieldsAndToken(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Order saved successfully",
			"data":    map[string]any{"order_id": got["orderId"], "status": "confirmed"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok123")
	stored, err := c.Create(context.Background(), models.Order{
		OrderID:      "ORD-7",
		CustomerName: "Asha",
		Items:        []models.OrderItem{{Name: "Classic Taco", Quantity: 2, Price: 79}},
		TotalAmount:  158,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok123", auth)
	assert.Equal(t, "ORD-7", got["orderId"])
	assert.Equal(t, "Asha", got["customerName"])
	assert.NotContains(t, got, "status") // omitted so the server defaults it
	assert.Equal(t, "ORD-7", stored.OrderID)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestFailuresAreUniform(t *testing.T) {
	t.Run("success false", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Cannot change status from delivered to accepted"})
		}))
		defer srv.Close()

		err := NewClient(srv.URL, "").UpdateStatus(context.Background(), "ORD-1", models.StatusAccepted)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrGateway))
		assert.Contains(t, err.Error(), "Cannot change status")
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "").List(context.Background())
		assert.True(t, errors.Is(err, ErrGateway))
	})

	t.Run("non-2xx without message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"success":false}`))
		}))
		defer srv.Close()

		err := NewClient(srv.URL, "").Delete(context.Background(), "ORD-1")
		assert.True(t, errors.Is(err, ErrGateway))
	})

	t.Run("network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // kill it before use

		_, err := NewClient(srv.URL, "").List(context.Background())
		assert.True(t, errors.Is(err, ErrGateway))
	})
}
