package factories

import (
	"fmt"
	"math/rand"

	"github.com/lucsky/cuid"

	"github.com/paanihub/paanictl/internal/models"
)

type RequestFactory struct{}

// CreateRequest builds a pending delivery request from a customer to a
// random point inside the city bounds, with a bid drawn from the
// configured range.
func (rf *RequestFactory) CreateRequest(config *models.Config, customer *models.Profile) *models.DeliveryRequest {
	minBid := config.Simulate.MinBid
	maxBid := config.Simulate.MaxBid
	if maxBid <= minBid {
		maxBid = minBid + 1
	}
	bid := minBid + rand.Float64()*(maxBid-minBid)

	return &models.DeliveryRequest{
		OrderID:      cuid.New(),
		CustomerID:   customer.UserID,
		CustomerName: customer.FirstName + " " + customer.LastName,
		To:           RandomCityLocation(config),
		BidAmount:    fmt.Sprintf("%.0f", bid),
		Status:       models.OrderStatusPending,
	}
}
