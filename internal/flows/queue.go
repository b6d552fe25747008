package flows

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/paanihub/paanictl/internal/api"
	"github.com/paanihub/paanictl/internal/models"
	"github.com/paanihub/paanictl/internal/state"
	"github.com/paanihub/paanictl/internal/telemetry"
)

// DriverQueue holds the delivery requests offered to a driver. Requests
// are keyed by order id, so the snapshot fetch and the live broadcasts
// can arrive in any order and any number of times without producing
// duplicates.
type DriverQueue struct {
	mu      sync.Mutex
	api     *api.Client
	profile *state.Profile
	open    ChannelOpener
	confirm ConfirmFunc
	rec     *telemetry.Recorder
	log     logrus.FieldLogger

	requests map[string]*models.DeliveryRequest
	channel  LiveChannel
	location models.Location
}

func NewDriverQueue(client *api.Client, profile *state.Profile, open ChannelOpener, confirm ConfirmFunc, rec *telemetry.Recorder, log logrus.FieldLogger) *DriverQueue {
	return &DriverQueue{
		api:      client,
		profile:  profile,
		open:     open,
		confirm:  confirm,
		rec:      rec,
		log:      log,
		requests: make(map[string]*models.DeliveryRequest),
	}
}

// SetLocation records the driver's pickup position, sent with every
// acceptance so the customer sees where the driver starts from.
func (q *DriverQueue) SetLocation(loc models.Location) {
	q.mu.Lock()
	q.location = loc
	q.mu.Unlock()
}

// UseCurrentLocation resolves device coordinates to an address and makes
// it the pickup position.
func (q *DriverQueue) UseCurrentLocation(ctx context.Context, geo Geocoder, lat, lng float64) (models.Location, error) {
	loc, err := geo.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return models.Location{}, fmt.Errorf("resolving driver location: %w", err)
	}
	q.SetLocation(loc)
	return loc, nil
}

// Start fetches the pending snapshot and subscribes to broadcasts. The
// two sources merge into one keyed set; whichever arrives first wins the
// insert and later copies only refresh fields.
func (q *DriverQueue) Start(ctx context.Context) error {
	pending, err := q.api.PendingRequests(ctx)
	if err != nil {
		return fmt.Errorf("fetching pending requests: %w", err)
	}
	for i := range pending {
		q.merge(pending[i])
	}

	ch, err := q.open(ctx)
	if err != nil {
		return fmt.Errorf("opening live channel: %w", err)
	}
	ch.On(models.EventNewRequestBroadcast, func(payload json.RawMessage) {
		var req models.DeliveryRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			q.log.WithError(err).Warn("malformed request broadcast")
			return
		}
		q.merge(req)
	})
	ch.On(models.EventOrderStatusUpdate, func(payload json.RawMessage) {
		var upd StatusUpdatePayload
		if err := json.Unmarshal(payload, &upd); err != nil {
			q.log.WithError(err).Warn("malformed status update")
			return
		}
		q.applyStatus(upd.OrderID, upd.Status)
	})

	q.mu.Lock()
	q.channel = ch
	q.mu.Unlock()
	return nil
}

// Stop closes the live channel. Queued requests stay visible.
func (q *DriverQueue) Stop() {
	q.mu.Lock()
	ch := q.channel
	q.channel = nil
	q.mu.Unlock()
	if ch != nil {
		ch.Close()
	}
}

func (q *DriverQueue) merge(req models.DeliveryRequest) {
	if req.OrderID == "" {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	existing, ok := q.requests[req.OrderID]
	if !ok {
		r := req
		q.requests[req.OrderID] = &r
		return
	}
	if req.CustomerName != "" {
		existing.CustomerName = req.CustomerName
	}
	if req.BidAmount != "" {
		existing.BidAmount = req.BidAmount
	}
	if !req.To.IsZero() {
		existing.To = req.To
	}
	// A repeated copy never moves an order backwards.
	if statusRank(req.Status) > statusRank(existing.Status) {
		existing.Status = req.Status
	}
}

// applyStatus reconciles a server-confirmed status. Regressions are
// ignored; the server is the only writer that can finish an order.
func (q *DriverQueue) applyStatus(orderID, status string) {
	if orderID == "" || status == "" {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	req, ok := q.requests[orderID]
	if !ok {
		return
	}
	if statusRank(status) <= statusRank(req.Status) {
		return
	}
	req.Status = status
	q.log.WithFields(logrus.Fields{"order": orderID, "status": status}).Info("order status confirmed")
}

func statusRank(status string) int {
	switch status {
	case models.OrderStatusPending, "":
		return 0
	case models.OrderStatusInProgress, models.OrderStatusRunning:
		return 1
	default:
		return 2
	}
}

// Requests returns the queue in stable order.
func (q *DriverQueue) Requests() []models.DeliveryRequest {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.DeliveryRequest, 0, len(q.requests))
	for _, req := range q.requests {
		out = append(out, *req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out
}

// HasActive reports whether any known request is currently in progress.
func (q *DriverQueue) HasActive() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, req := range q.requests {
		if models.IsActiveStatus(req.Status) {
			return true
		}
	}
	return false
}

// Accept offers to serve a request. A driver already on an active order
// is refused before the confirmation prompt appears. The request flips
// to in-progress only when the server echoes the acceptance back.
func (q *DriverQueue) Accept(ctx context.Context, orderID string) error {
	q.mu.Lock()
	req, ok := q.requests[orderID]
	if !ok {
		q.mu.Unlock()
		return ErrUnknownRequest
	}
	if models.IsTerminalStatus(req.Status) {
		q.mu.Unlock()
		return ErrOrderFinished
	}
	for _, r := range q.requests {
		if models.IsActiveStatus(r.Status) {
			q.mu.Unlock()
			return ErrDriverBusy
		}
	}
	ch := q.channel
	from := q.location
	customerName := req.CustomerName
	q.mu.Unlock()

	if ch == nil {
		return fmt.Errorf("live channel not open")
	}
	prof := q.profile.Current()
	if prof == nil {
		return fmt.Errorf("profile not loaded")
	}
	if !q.confirm(fmt.Sprintf("Accept delivery for %s?", customerName)) {
		return ErrAborted
	}
	payload := AcceptRequestPayload{
		OrderID:      orderID,
		DriverID:     prof.ProfileID,
		FromLocation: from,
	}
	if err := ch.Emit(models.EventAcceptRequest, payload); err != nil {
		return fmt.Errorf("sending acceptance: %w", err)
	}
	q.rec.Record(models.TopicRequestAccepted, models.RequestAcceptedEvent{
		Timestamp: time.Now().Unix(),
		OrderID:   orderID,
		DriverID:  prof.ProfileID,
		Lat:       from.Lat,
		Lng:       from.Lng,
	})
	q.log.WithField("order", orderID).Info("acceptance sent, awaiting confirmation")
	return nil
}

// Decline removes a request from this driver's queue. The request only
// disappears locally once the backend acknowledges the removal.
func (q *DriverQueue) Decline(ctx context.Context, orderID string) error {
	q.mu.Lock()
	req, ok := q.requests[orderID]
	if !ok {
		q.mu.Unlock()
		return ErrUnknownRequest
	}
	customerID := req.CustomerID
	q.mu.Unlock()

	prof := q.profile.Current()
	if prof == nil {
		return fmt.Errorf("profile not loaded")
	}
	if err := q.api.DeclinePending(ctx, orderID, customerID, prof.UserID); err != nil {
		return fmt.Errorf("declining request: %w", err)
	}

	q.mu.Lock()
	delete(q.requests, orderID)
	q.mu.Unlock()

	q.rec.Record(models.TopicRequestDeclined, models.RequestDeclinedEvent{
		Timestamp: time.Now().Unix(),
		OrderID:   orderID,
		DriverID:  prof.ProfileID,
	})
	q.log.WithField("order", orderID).Info("request declined")
	return nil
}
