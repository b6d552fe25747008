package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/paanihub/paanictl/internal/models"
)

// PendingRequests fetches the snapshot of open broadcasts awaiting a
// driver.
func (c *Client) PendingRequests(ctx context.Context) ([]models.DeliveryRequest, error) {
	var requests []models.DeliveryRequest
	if err := c.do(ctx, http.MethodGet, "/api/requests/pending", nil, nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// DeclinePending removes one broadcast for this driver. The backend scopes
// the delete by both customer and driver so other drivers keep seeing it.
func (c *Client) DeclinePending(ctx context.Context, orderID, customerID, driverID string) error {
	query := url.Values{}
	if customerID != "" {
		query.Set("customerId", customerID)
	}
	if driverID != "" {
		query.Set("driverId", driverID)
	}
	return c.do(ctx, http.MethodDelete, "/api/requests/pending/"+orderID, query, nil, nil)
}

// RunningOrder fetches the caller's single active order, or
// ErrNoActiveOrder when there is none.
func (c *Client) RunningOrder(ctx context.Context, profileID string) (*models.Order, error) {
	var order models.Order
	err := c.do(ctx, http.MethodGet, "/api/requests/running/"+profileID, nil, nil, &order)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrNoActiveOrder
		}
		return nil, err
	}
	return &order, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID, customerID string) error {
	query := url.Values{"customerId": {customerID}}
	return c.do(ctx, http.MethodPost, "/api/requests/cancel/"+orderID, query, nil, nil)
}

func (c *Client) CompleteOrder(ctx context.Context, orderID, customerID string) error {
	query := url.Values{"customerId": {customerID}}
	return c.do(ctx, http.MethodPost, "/api/requests/complete/"+orderID, query, nil, nil)
}

// AllOrders fetches the full order history for the dashboard summary.
func (c *Client) AllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/requests/", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
