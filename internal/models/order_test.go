package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryRequestUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected DeliveryRequest
	}{
		{
			name:    "broadcast shape",
			payload: `{"orderId":"o1","customerId":"c1","customerName":"Asha Perera","toLocation":{"lat":6.9,"lng":79.8,"address":"12 Lake Road"},"bidAmount":"500"}`,
			expected: DeliveryRequest{
				OrderID:      "o1",
				CustomerID:   "c1",
				CustomerName: "Asha Perera",
				To:           Location{Lat: 6.9, Lng: 79.8, Address: "12 Lake Road"},
				BidAmount:    "500",
				Status:       OrderStatusPending,
			},
		},
		{
			name:    "stored shape with mongo id and to",
			payload: `{"_id":"o2","customerId":"c2","to":{"lat":7.2,"lng":80.6,"address":"Kandy"},"bidAmount":"750","status":"inprogress"}`,
			expected: DeliveryRequest{
				OrderID:    "o2",
				CustomerID: "c2",
				To:         Location{Lat: 7.2, Lng: 80.6, Address: "Kandy"},
				BidAmount:  "750",
				Status:     OrderStatusInProgress,
			},
		},
		{
			name:    "orderId wins over _id",
			payload: `{"orderId":"o3","_id":"ignored"}`,
			expected: DeliveryRequest{
				OrderID: "o3",
				Status:  OrderStatusPending,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req DeliveryRequest
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &req))
			assert.Equal(t, tt.expected, req)
		})
	}
}

func TestCustomerUnmarshal(t *testing.T) {
	var fromString Customer
	require.NoError(t, json.Unmarshal([]byte(`"c1"`), &fromString))
	assert.Equal(t, Customer{ID: "c1"}, fromString)

	var fromObject Customer
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"c2","firstName":"Asha","lastName":"Perera"}`), &fromObject))
	assert.Equal(t, Customer{ID: "c2", FirstName: "Asha", LastName: "Perera"}, fromObject)
}

func TestOrderCanTransition(t *testing.T) {
	tests := []struct {
		status    string
		target    string
		permitted bool
	}{
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusCompleted, true},
		{OrderStatusInProgress, OrderStatusCompleted, true},
		{OrderStatusInProgress, OrderStatusCancelled, true},
		{OrderStatusRunning, OrderStatusCompleted, true},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusCompleted, false},
		{OrderStatusCancelled, OrderStatusCompleted, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
		{OrderStatusInProgress, OrderStatusPending, false},
	}
	for _, tt := range tests {
		order := Order{Status: tt.status}
		assert.Equal(t, tt.permitted, order.CanTransition(tt.target),
			"%s -> %s", tt.status, tt.target)
	}
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, IsActiveStatus(OrderStatusInProgress))
	assert.True(t, IsActiveStatus(OrderStatusRunning))
	assert.False(t, IsActiveStatus(OrderStatusPending))

	assert.True(t, IsTerminalStatus(OrderStatusCompleted))
	assert.True(t, IsTerminalStatus(OrderStatusCancelled))
	assert.False(t, IsTerminalStatus(OrderStatusRunning))
}
