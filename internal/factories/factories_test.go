package factories

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paanihub/paanictl/internal/models"
)

func testConfig() *models.Config {
	return &models.Config{
		CityName:    "Colombo",
		CityLat:     6.9271,
		CityLng:     79.8612,
		UrbanRadius: 10,
		Simulate:    models.SimulateConfig{MinBid: 200, MaxBid: 1000},
	}
}

func TestCreateCustomer(t *testing.T) {
	var factory ProfileFactory
	customer := factory.CreateCustomer(testConfig())

	assert.NotEmpty(t, customer.ProfileID)
	assert.NotEmpty(t, customer.UserID)
	assert.NotEqual(t, customer.ProfileID, customer.UserID)
	assert.Equal(t, models.RoleUser, customer.Role)
	assert.Equal(t, "Colombo", customer.City)
	assert.True(t, customer.Complete(), "generated customers pass the completeness check")
	assert.Empty(t, customer.LicenceNo)
}

func TestCreateDriver(t *testing.T) {
	var factory ProfileFactory
	driver := factory.CreateDriver(testConfig())

	assert.Equal(t, models.RoleDriver, driver.Role)
	assert.NotEmpty(t, driver.LicenceNo)
	assert.NotEmpty(t, driver.CarNo)
	assert.True(t, driver.Complete(), "generated drivers pass the completeness check")
}

func TestRandomCityLocationWithinBounds(t *testing.T) {
	cfg := testConfig()
	for i := 0; i < 100; i++ {
		loc := RandomCityLocation(cfg)
		assert.InDelta(t, cfg.CityLat, loc.Lat, 0.2, "latitude stays near the city")
		assert.InDelta(t, cfg.CityLng, loc.Lng, 0.2, "longitude stays near the city")
		assert.NotEmpty(t, loc.Address)
	}
}

func TestCreateRequestBidWithinRange(t *testing.T) {
	var profiles ProfileFactory
	var requests RequestFactory
	cfg := testConfig()
	customer := profiles.CreateCustomer(cfg)

	for i := 0; i < 50; i++ {
		request := requests.CreateRequest(cfg, customer)
		require.NotEmpty(t, request.OrderID)
		assert.Equal(t, customer.UserID, request.CustomerID)
		assert.Equal(t, models.OrderStatusPending, request.Status)

		bid, err := strconv.ParseFloat(request.BidAmount, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, bid, 199.0)
		assert.LessOrEqual(t, bid, 1000.0)
	}
}
