package simulator

import (
	"math/rand"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/paanihub/paanictl/internal/factories"
	"github.com/paanihub/paanictl/internal/models"
	"github.com/paanihub/paanictl/internal/telemetry"
)

// Simulator replays a synthetic marketplace against the telemetry
// pipeline: customers place requests, drivers respond, orders settle.
// No backend is contacted; the point is exercising the event sinks with
// realistic traffic.
type Simulator struct {
	Config      *models.Config
	CurrentTime time.Time
	EndTime     time.Time

	Customers []*models.Profile
	Drivers   []*models.Profile
	Requests  map[string]*models.DeliveryRequest

	EventQueue *models.EventQueue

	rng      *rand.Rand
	profiles factories.ProfileFactory
	requests factories.RequestFactory
	rec      *telemetry.Recorder
	log      logrus.FieldLogger
}

func New(config *models.Config, rec *telemetry.Recorder, log logrus.FieldLogger) *Simulator {
	start := config.Simulate.StartDate
	if start.IsZero() {
		start = time.Now()
	}
	duration := config.Simulate.Duration
	if duration <= 0 {
		duration = 24 * time.Hour
	}
	seed := int64(config.Simulate.Seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		Config:      config,
		CurrentTime: start,
		EndTime:     start.Add(duration),
		Requests:    make(map[string]*models.DeliveryRequest),
		EventQueue:  models.NewEventQueue(),
		rng:         rand.New(rand.NewSource(seed)),
		rec:         rec,
		log:         log,
	}
}

func (s *Simulator) initializeData() {
	for i := 0; i < s.Config.Simulate.InitialCustomers; i++ {
		customer := s.profiles.CreateCustomer(s.Config)
		s.Customers = append(s.Customers, customer)
		s.scheduleNextOrder(customer)
	}
	for i := 0; i < s.Config.Simulate.InitialDrivers; i++ {
		s.Drivers = append(s.Drivers, s.profiles.CreateDriver(s.Config))
	}
	s.log.WithFields(logrus.Fields{
		"customers": len(s.Customers),
		"drivers":   len(s.Drivers),
	}).Info("synthetic marketplace initialized")
}

// Run steps virtual time forward one minute at a time, draining due
// events at each step.
func (s *Simulator) Run() {
	s.initializeData()
	s.log.WithFields(logrus.Fields{
		"from": s.CurrentTime.Format(time.RFC3339),
		"to":   s.EndTime.Format(time.RFC3339),
	}).Info("simulation starting")

	totalSteps := int(s.EndTime.Sub(s.CurrentTime) / time.Minute)
	bar := progressbar.Default(int64(totalSteps), "simulating")

	var eventsCount int
	for s.CurrentTime.Before(s.EndTime) {
		for {
			next := s.EventQueue.Peek()
			if next == nil || next.Time.After(s.CurrentTime) {
				break
			}
			event := s.EventQueue.Dequeue()
			if event != nil {
				s.processEvent(event)
				eventsCount++
			}
		}
		s.simulateTimeStep()
		s.CurrentTime = s.CurrentTime.Add(1 * time.Minute)
		bar.Add(1)
	}

	s.log.WithField("events", eventsCount).Info("simulation completed")
}

// simulateTimeStep injects the rare background events the schedule does
// not generate on its own.
func (s *Simulator) simulateTimeStep() {
	// roughly one new signup per simulated day
	if s.rng.Float64() < 1.0/(24*60) {
		s.EventQueue.Enqueue(&models.Event{
			Time: s.CurrentTime,
			Type: models.EventAddNewCustomer,
		})
	}
	// occasional customer trying out the driver side
	if len(s.Customers) > 0 && s.rng.Float64() < 1.0/(24*60*7) {
		s.EventQueue.Enqueue(&models.Event{
			Time: s.CurrentTime,
			Type: models.EventSwitchRole,
			Data: s.Customers[s.rng.Intn(len(s.Customers))],
		})
	}
}

func (s *Simulator) processEvent(event *models.Event) {
	switch event.Type {
	case models.EventPlaceRequest:
		s.handlePlaceRequest(event)
	case models.EventDriverRespond:
		s.handleDriverRespond(event)
	case models.EventCompleteOrder:
		s.handleCompleteOrder(event)
	case models.EventCancelOrder:
		s.handleCancelOrder(event)
	case models.EventSwitchRole:
		s.handleSwitchRole(event)
	case models.EventAddNewCustomer:
		s.handleAddNewCustomer()
	default:
		s.log.WithField("type", event.Type).Warn("unhandled event")
	}
}

func (s *Simulator) handlePlaceRequest(event *models.Event) {
	customer, ok := event.Data.(*models.Profile)
	if !ok {
		return
	}
	request := s.requests.CreateRequest(s.Config, customer)
	s.Requests[request.OrderID] = request

	s.rec.Record(models.TopicOrderPlaced, models.OrderPlacedEvent{
		Timestamp:  s.CurrentTime.Unix(),
		OrderID:    request.OrderID,
		CustomerID: request.CustomerID,
		BidAmount:  request.BidAmount,
		Lat:        request.To.Lat,
		Lng:        request.To.Lng,
	})

	respondDelay := time.Duration(1+s.rng.Intn(5)) * time.Minute
	s.EventQueue.Enqueue(&models.Event{
		Time: s.CurrentTime.Add(respondDelay),
		Type: models.EventDriverRespond,
		Data: request,
	})
	s.scheduleNextOrder(customer)
}

func (s *Simulator) handleDriverRespond(event *models.Event) {
	request, ok := event.Data.(*models.DeliveryRequest)
	if !ok || request.Status != models.OrderStatusPending {
		return
	}
	if len(s.Drivers) == 0 {
		s.expireRequest(request)
		return
	}
	driver := s.Drivers[s.rng.Intn(len(s.Drivers))]
	from := factories.RandomCityLocation(s.Config)

	if s.rng.Float64() >= s.Config.Simulate.AcceptProbability {
		s.rec.Record(models.TopicRequestDeclined, models.RequestDeclinedEvent{
			Timestamp: s.CurrentTime.Unix(),
			OrderID:   request.OrderID,
			DriverID:  driver.ProfileID,
		})
		// another driver may still pick it up
		if s.rng.Float64() < 0.5 {
			s.EventQueue.Enqueue(&models.Event{
				Time: s.CurrentTime.Add(time.Duration(1+s.rng.Intn(5)) * time.Minute),
				Type: models.EventDriverRespond,
				Data: request,
			})
		} else {
			s.expireRequest(request)
		}
		return
	}

	request.Status = models.OrderStatusInProgress
	s.rec.Record(models.TopicRequestAccepted, models.RequestAcceptedEvent{
		Timestamp: s.CurrentTime.Unix(),
		OrderID:   request.OrderID,
		DriverID:  driver.ProfileID,
		Lat:       from.Lat,
		Lng:       from.Lng,
	})
	s.rec.Record(models.TopicDriverMatched, models.DriverMatchedEvent{
		Timestamp:  s.CurrentTime.Unix(),
		OrderID:    request.OrderID,
		CustomerID: request.CustomerID,
		DriverLat:  from.Lat,
		DriverLng:  from.Lng,
	})

	settleDelay := time.Duration(20+s.rng.Intn(40)) * time.Minute
	settleType := models.EventCompleteOrder
	if s.rng.Float64() < s.Config.Simulate.CancellationRate {
		settleType = models.EventCancelOrder
		settleDelay = time.Duration(2+s.rng.Intn(15)) * time.Minute
	}
	s.EventQueue.Enqueue(&models.Event{
		Time: s.CurrentTime.Add(settleDelay),
		Type: settleType,
		Data: request,
	})
}

func (s *Simulator) handleCompleteOrder(event *models.Event) {
	request, ok := event.Data.(*models.DeliveryRequest)
	if !ok || !models.IsActiveStatus(request.Status) {
		return
	}
	request.Status = models.OrderStatusCompleted
	s.rec.Record(models.TopicOrderCompleted, models.OrderCompletedEvent{
		Timestamp:  s.CurrentTime.Unix(),
		OrderID:    request.OrderID,
		CustomerID: request.CustomerID,
	})
	delete(s.Requests, request.OrderID)
}

func (s *Simulator) handleCancelOrder(event *models.Event) {
	request, ok := event.Data.(*models.DeliveryRequest)
	if !ok || models.IsTerminalStatus(request.Status) {
		return
	}
	fromStatus := request.Status
	request.Status = models.OrderStatusCancelled
	s.rec.Record(models.TopicOrderCancelled, models.OrderCancelledEvent{
		Timestamp:  s.CurrentTime.Unix(),
		OrderID:    request.OrderID,
		CustomerID: request.CustomerID,
		FromStatus: fromStatus,
	})
	delete(s.Requests, request.OrderID)
}

func (s *Simulator) handleSwitchRole(event *models.Event) {
	profile, ok := event.Data.(*models.Profile)
	if !ok {
		return
	}
	if profile.Role == models.RoleDriver {
		profile.Role = models.RoleUser
	} else {
		profile.Role = models.RoleDriver
	}
	s.rec.Record(models.TopicRoleSwitched, models.RoleSwitchedEvent{
		Timestamp: s.CurrentTime.Unix(),
		ProfileID: profile.ProfileID,
		Role:      profile.Role,
	})
}

func (s *Simulator) handleAddNewCustomer() {
	customer := s.profiles.CreateCustomer(s.Config)
	s.Customers = append(s.Customers, customer)
	s.scheduleNextOrder(customer)
}

// expireRequest cancels a pending request nobody served.
func (s *Simulator) expireRequest(request *models.DeliveryRequest) {
	s.EventQueue.Enqueue(&models.Event{
		Time: s.CurrentTime.Add(time.Duration(10+s.rng.Intn(20)) * time.Minute),
		Type: models.EventCancelOrder,
		Data: request,
	})
}

// scheduleNextOrder samples the gap to a customer's next request from an
// exponential distribution around the configured hourly frequency.
func (s *Simulator) scheduleNextOrder(customer *models.Profile) {
	frequency := s.Config.Simulate.OrderFrequency
	if frequency <= 0 {
		frequency = 0.1
	}
	meanGapHours := 1.0 / frequency
	gap := time.Duration(s.rng.ExpFloat64() * meanGapHours * float64(time.Hour))
	if gap < time.Minute {
		gap = time.Minute
	}
	s.EventQueue.Enqueue(&models.Event{
		Time: s.CurrentTime.Add(gap),
		Type: models.EventPlaceRequest,
		Data: customer,
	})
}
