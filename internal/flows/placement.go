package flows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/paanihub/paanictl/internal/models"
	"github.com/paanihub/paanictl/internal/state"
	"github.com/paanihub/paanictl/internal/telemetry"
)

// Placement drives the customer side of an order: collect an origin and
// a bid, publish the request on the live channel and wait for a driver.
type Placement struct {
	mu      sync.Mutex
	geo     Geocoder
	profile *state.Profile
	open    ChannelOpener
	rec     *telemetry.Recorder
	log     logrus.FieldLogger

	origin string
	bid    string
}

// Match is the outcome of a successful placement.
type Match struct {
	Driver      models.Location
	Destination models.Location
}

func NewPlacement(geo Geocoder, profile *state.Profile, open ChannelOpener, rec *telemetry.Recorder, log logrus.FieldLogger) *Placement {
	return &Placement{
		geo:     geo,
		profile: profile,
		open:    open,
		rec:     rec,
		log:     log,
	}
}

func (p *Placement) SetOrigin(address string) {
	p.mu.Lock()
	p.origin = address
	p.mu.Unlock()
}

func (p *Placement) SetBid(amount string) {
	p.mu.Lock()
	p.bid = amount
	p.mu.Unlock()
}

func (p *Placement) Origin() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.origin
}

func (p *Placement) Bid() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bid
}

// UseCurrentLocation resolves device coordinates to a street address and
// makes it the origin.
func (p *Placement) UseCurrentLocation(ctx context.Context, lat, lng float64) (models.Location, error) {
	loc, err := p.geo.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return models.Location{}, fmt.Errorf("resolving current location: %w", err)
	}
	p.SetOrigin(loc.Address)
	return loc, nil
}

// Reset clears the collected origin and bid.
func (p *Placement) Reset() {
	p.mu.Lock()
	p.origin = ""
	p.bid = ""
	p.mu.Unlock()
}

// Submit resolves the origin, announces the request to nearby drivers
// and blocks until one accepts or ctx is cancelled. Cancelling retracts
// the request from driver queues and clears the collected inputs.
func (p *Placement) Submit(ctx context.Context) (*Match, error) {
	p.mu.Lock()
	origin, bid := p.origin, p.bid
	p.mu.Unlock()

	if origin == "" {
		return nil, errors.New("no delivery address set")
	}
	if bid == "" {
		return nil, errors.New("no bid amount set")
	}
	prof := p.profile.Current()
	if prof == nil || prof.UserID == "" {
		return nil, errors.New("profile not loaded")
	}

	dest, err := p.geo.Geocode(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("resolving delivery address: %w", err)
	}

	ch, err := p.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening live channel: %w", err)
	}
	defer ch.Close()

	matched := make(chan models.Location, 1)
	ch.On(models.EventOrderStatusUpdate, func(payload json.RawMessage) {
		var upd StatusUpdatePayload
		if err := json.Unmarshal(payload, &upd); err != nil {
			p.log.WithError(err).Warn("malformed status update")
			return
		}
		if upd.FromLocation == nil {
			return
		}
		select {
		case matched <- *upd.FromLocation:
		default:
		}
	})

	req := NewRequestPayload{
		CustomerName: prof.FirstName + " " + prof.LastName,
		CustomerID:   prof.UserID,
		ToLocation:   dest,
		BidAmount:    bid,
	}
	if err := ch.Emit(models.EventNewRequest, req); err != nil {
		return nil, fmt.Errorf("announcing request: %w", err)
	}
	p.rec.Record(models.TopicOrderPlaced, models.OrderPlacedEvent{
		Timestamp:  time.Now().Unix(),
		CustomerID: prof.UserID,
		BidAmount:  bid,
		Lat:        dest.Lat,
		Lng:        dest.Lng,
	})
	p.log.WithFields(logrus.Fields{
		"customer": prof.UserID,
		"to":       dest.Address,
		"bid":      bid,
	}).Info("request announced, waiting for a driver")

	select {
	case driver := <-matched:
		p.rec.Record(models.TopicDriverMatched, models.DriverMatchedEvent{
			Timestamp:  time.Now().Unix(),
			CustomerID: prof.UserID,
			DriverLat:  driver.Lat,
			DriverLng:  driver.Lng,
		})
		return &Match{Driver: driver, Destination: dest}, nil
	case <-ctx.Done():
		if err := ch.Emit(models.EventCancelRequest, CancelRequestPayload{CustomerID: prof.UserID}); err != nil {
			p.log.WithError(err).Warn("retracting request")
		}
		p.Reset()
		return nil, ctx.Err()
	}
}
