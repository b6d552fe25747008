package factories

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/paanihub/paanictl/internal/models"
)

var fake = faker.New()

type ProfileFactory struct{}

// CreateCustomer builds a synthetic customer profile placed somewhere
// inside the configured city bounds.
func (pf *ProfileFactory) CreateCustomer(config *models.Config) *models.Profile {
	person := fake.Person()
	return &models.Profile{
		ProfileID:   cuid.New(),
		UserID:      cuid.New(),
		FirstName:   person.FirstName(),
		LastName:    person.LastName(),
		Email:       fake.Internet().Email(),
		PhoneNumber: fake.Phone().Number(),
		City:        config.CityName,
		ZipCode:     fake.Address().PostCode(),
		Address:     fake.Address().StreetAddress(),
		Gender:      randomGender(),
		Role:        models.RoleUser,
	}
}

// CreateDriver builds a synthetic driver profile with the vehicle fields
// a complete driver record carries.
func (pf *ProfileFactory) CreateDriver(config *models.Config) *models.Profile {
	profile := pf.CreateCustomer(config)
	profile.Role = models.RoleDriver
	profile.LicenceNo = fmt.Sprintf("DL-%07d", rand.Intn(10000000))
	profile.CarNo = fmt.Sprintf("%s-%04d", randomPlatePrefix(), rand.Intn(10000))
	return profile
}

// RandomCityLocation picks a point inside the configured urban radius.
func RandomCityLocation(config *models.Config) models.Location {
	latRange := config.UrbanRadius / 111.0 // approx. conversion from km to degrees
	lngRange := latRange / math.Cos(config.CityLat*math.Pi/180.0)

	latOffset := (rand.Float64()*2 - 1) * latRange
	lngOffset := (rand.Float64()*2 - 1) * lngRange

	return models.Location{
		Lat:     config.CityLat + latOffset,
		Lng:     config.CityLng + lngOffset,
		Address: fake.Address().StreetAddress(),
	}
}

func randomGender() string {
	if fake.Boolean().Bool() {
		return "male"
	}
	return "female"
}

func randomPlatePrefix() string {
	letters := "ABCDEFGHJKLMNPRSTUVWXYZ"
	a := letters[rand.Intn(len(letters))]
	b := letters[rand.Intn(len(letters))]
	return string([]byte{a, b})
}
