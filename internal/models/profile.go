package models

// Profile is the per-account record driving personalisation. The backend
// owns the authoritative copy; the client holds a possibly-stale snapshot.
type Profile struct {
	ProfileID   string `json:"profileId"`
	UserID      string `json:"userId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	City        string `json:"city,omitempty"`
	ZipCode     string `json:"zipCode,omitempty"`
	Address     string `json:"address,omitempty"`
	LicenceNo   string `json:"licenceNo,omitempty"`
	CarNo       string `json:"carNo,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Picture     string `json:"picture,omitempty"` // remote URL or local path pending upload
	Role        string `json:"role"`
}

// ProfileUpdate carries a partial edit; nil fields are left untouched.
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
	City        *string
	ZipCode     *string
	Address     *string
	LicenceNo   *string
	CarNo       *string
	Gender      *string
	Picture     *string
}

// Apply merges non-nil fields of the update into the profile.
func (p *Profile) Apply(u ProfileUpdate) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.FirstName, u.FirstName)
	set(&p.LastName, u.LastName)
	set(&p.Email, u.Email)
	set(&p.PhoneNumber, u.PhoneNumber)
	set(&p.City, u.City)
	set(&p.ZipCode, u.ZipCode)
	set(&p.Address, u.Address)
	set(&p.LicenceNo, u.LicenceNo)
	set(&p.CarNo, u.CarNo)
	set(&p.Gender, u.Gender)
	set(&p.Picture, u.Picture)
}

// RequiredFields returns the field names that must be non-empty for the
// given role. Drivers need contact, vehicle and address details before
// they may take orders; plain users only need name and email.
func RequiredFields(role string) []string {
	if role == RoleDriver {
		return []string{
			"firstName", "lastName", "phoneNumber", "licenceNo", "carNo",
			"email", "city", "zipCode", "address", "gender",
		}
	}
	return []string{"firstName", "lastName", "email"}
}

// Complete reports whether every required field for the profile's role is
// non-empty.
func (p *Profile) Complete() bool {
	if p == nil {
		return false
	}
	values := map[string]string{
		"firstName":   p.FirstName,
		"lastName":    p.LastName,
		"email":       p.Email,
		"phoneNumber": p.PhoneNumber,
		"city":        p.City,
		"zipCode":     p.ZipCode,
		"address":     p.Address,
		"licenceNo":   p.LicenceNo,
		"carNo":       p.CarNo,
		"gender":      p.Gender,
	}
	for _, field := range RequiredFields(p.Role) {
		if values[field] == "" {
			return false
		}
	}
	return true
}
