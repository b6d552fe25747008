package flows

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/paanihub/paanictl/internal/api"
	"github.com/paanihub/paanictl/internal/models"
	"github.com/paanihub/paanictl/internal/state"
	"github.com/paanihub/paanictl/internal/telemetry"
)

// ActiveOrder tracks the caller's current in-progress delivery and
// settles it. The backend row is authoritative; every mutation is
// followed by a refetch.
type ActiveOrder struct {
	mu      sync.Mutex
	api     *api.Client
	profile *state.Profile
	confirm ConfirmFunc
	rec     *telemetry.Recorder
	log     logrus.FieldLogger

	order *models.Order
}

func NewActiveOrder(client *api.Client, profile *state.Profile, confirm ConfirmFunc, rec *telemetry.Recorder, log logrus.FieldLogger) *ActiveOrder {
	return &ActiveOrder{
		api:     client,
		profile: profile,
		confirm: confirm,
		rec:     rec,
		log:     log,
	}
}

// Refresh fetches the running order for the loaded profile. Having no
// running order is not an error; Order returns nil afterwards.
func (a *ActiveOrder) Refresh(ctx context.Context) error {
	prof := a.profile.Current()
	if prof == nil {
		return fmt.Errorf("profile not loaded")
	}
	order, err := a.api.RunningOrder(ctx, prof.ProfileID)
	if err != nil {
		if errors.Is(err, api.ErrNoActiveOrder) {
			a.mu.Lock()
			a.order = nil
			a.mu.Unlock()
			return nil
		}
		return fmt.Errorf("fetching running order: %w", err)
	}
	a.mu.Lock()
	a.order = order
	a.mu.Unlock()
	return nil
}

// Order returns a copy of the tracked order, or nil.
func (a *ActiveOrder) Order() *models.Order {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.order == nil {
		return nil
	}
	copied := *a.order
	return &copied
}

// Complete marks the tracked order delivered.
func (a *ActiveOrder) Complete(ctx context.Context) error {
	return a.settle(ctx, models.OrderStatusCompleted)
}

// Cancel abandons the tracked order.
func (a *ActiveOrder) Cancel(ctx context.Context) error {
	return a.settle(ctx, models.OrderStatusCancelled)
}

func (a *ActiveOrder) settle(ctx context.Context, target string) error {
	a.mu.Lock()
	order := a.order
	a.mu.Unlock()
	if order == nil {
		return api.ErrNoActiveOrder
	}
	if !order.CanTransition(target) {
		return ErrOrderFinished
	}

	verb := "Complete"
	if target == models.OrderStatusCancelled {
		verb = "Cancel"
	}
	if !a.confirm(fmt.Sprintf("%s order %s?", verb, order.ID)) {
		return ErrAborted
	}

	var err error
	switch target {
	case models.OrderStatusCompleted:
		err = a.api.CompleteOrder(ctx, order.ID, order.Customer.ID)
	case models.OrderStatusCancelled:
		err = a.api.CancelOrder(ctx, order.ID, order.Customer.ID)
	}
	if err != nil {
		return fmt.Errorf("settling order: %w", err)
	}

	switch target {
	case models.OrderStatusCompleted:
		a.rec.Record(models.TopicOrderCompleted, models.OrderCompletedEvent{
			Timestamp:  time.Now().Unix(),
			OrderID:    order.ID,
			CustomerID: order.Customer.ID,
		})
	case models.OrderStatusCancelled:
		a.rec.Record(models.TopicOrderCancelled, models.OrderCancelledEvent{
			Timestamp:  time.Now().Unix(),
			OrderID:    order.ID,
			CustomerID: order.Customer.ID,
			FromStatus: order.Status,
		})
	}
	a.log.WithFields(logrus.Fields{"order": order.ID, "status": target}).Info("order settled")

	return a.Refresh(ctx)
}
