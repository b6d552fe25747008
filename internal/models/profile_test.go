package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullDriverProfile() *Profile {
	return &Profile{
		ProfileID:   "p1",
		UserID:      "u1",
		FirstName:   "Asha",
		LastName:    "Perera",
		Email:       "asha@example.com",
		PhoneNumber: "0771234567",
		City:        "Colombo",
		ZipCode:     "00100",
		Address:     "12 Lake Road",
		LicenceNo:   "DL-0012345",
		CarNo:       "WP-1234",
		Gender:      "female",
		Role:        RoleDriver,
	}
}

func TestProfileComplete(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Profile)
		expected bool
	}{
		{
			name:     "driver with every field",
			mutate:   func(p *Profile) {},
			expected: true,
		},
		{
			name:     "driver missing licence",
			mutate:   func(p *Profile) { p.LicenceNo = "" },
			expected: false,
		},
		{
			name:     "driver missing vehicle",
			mutate:   func(p *Profile) { p.CarNo = "" },
			expected: false,
		},
		{
			name:     "driver missing gender",
			mutate:   func(p *Profile) { p.Gender = "" },
			expected: false,
		},
		{
			name: "customer only needs name and email",
			mutate: func(p *Profile) {
				p.Role = RoleUser
				p.LicenceNo = ""
				p.CarNo = ""
				p.City = ""
				p.PhoneNumber = ""
			},
			expected: true,
		},
		{
			name: "customer missing email",
			mutate: func(p *Profile) {
				p.Role = RoleUser
				p.Email = ""
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := fullDriverProfile()
			tt.mutate(profile)
			assert.Equal(t, tt.expected, profile.Complete())
		})
	}
}

func TestProfileCompleteNil(t *testing.T) {
	var profile *Profile
	assert.False(t, profile.Complete())
}

func TestProfileApply(t *testing.T) {
	profile := fullDriverProfile()
	city := "Kandy"
	phone := "0719998877"
	profile.Apply(ProfileUpdate{City: &city, PhoneNumber: &phone})

	assert.Equal(t, "Kandy", profile.City)
	assert.Equal(t, "0719998877", profile.PhoneNumber)
	assert.Equal(t, "Asha", profile.FirstName, "untouched fields keep their value")
}
