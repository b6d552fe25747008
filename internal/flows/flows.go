package flows

import (
	"context"
	"errors"

	"github.com/paanihub/paanictl/internal/models"
	"github.com/paanihub/paanictl/internal/stream"
)

var (
	// ErrDriverBusy refuses a new acceptance while an order is already
	// in progress. The confirmation prompt is never shown in this case.
	ErrDriverBusy = errors.New("an order is already in progress")

	// ErrAborted reports that the operator declined the confirmation
	// prompt; no state changed.
	ErrAborted = errors.New("aborted by operator")

	// ErrUnknownRequest reports an order id not present in the queue.
	ErrUnknownRequest = errors.New("unknown request")

	// ErrOrderFinished refuses a transition on an order that already
	// reached a terminal status.
	ErrOrderFinished = errors.New("order already completed or cancelled")
)

// LiveChannel is the slice of stream.Channel the flows need; tests swap
// in an in-memory implementation.
type LiveChannel interface {
	On(eventType string, fn stream.Handler)
	Emit(eventType string, payload interface{}) error
	Close() error
}

// ChannelOpener opens a live channel for the duration of one flow.
type ChannelOpener func(ctx context.Context) (LiveChannel, error)

// Geocoder is the slice of geo.Geocoder the flows need.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Location, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (models.Location, error)
}

// ConfirmFunc asks the operator to confirm a destructive action.
type ConfirmFunc func(prompt string) bool

// Live channel payloads, shared with the backend broadcaster.

type NewRequestPayload struct {
	CustomerName string          `json:"customerName"`
	CustomerID   string          `json:"customerId"`
	ToLocation   models.Location `json:"toLocation"`
	BidAmount    string          `json:"bidAmount"`
}

type CancelRequestPayload struct {
	CustomerID string `json:"customerId"`
}

type AcceptRequestPayload struct {
	OrderID      string          `json:"orderId"`
	DriverID     string          `json:"driverId"`
	FromLocation models.Location `json:"fromLocation"`
}

type StatusUpdatePayload struct {
	OrderID      string           `json:"orderId"`
	Status       string           `json:"status"`
	FromLocation *models.Location `json:"fromLocation"`
}
