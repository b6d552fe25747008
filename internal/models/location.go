package models

import "math"

type Location struct {
	Lat     float64 `json:"lat" parquet:"name=lat, type=DOUBLE"`
	Lng     float64 `json:"lng" parquet:"name=lng, type=DOUBLE"`
	Address string  `json:"address,omitempty" parquet:"name=address, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// IsZero reports whether the location has no coordinates set. An address
// without coordinates still counts as zero since the backend matches on
// lat/lng only.
func (l Location) IsZero() bool {
	return l.Lat == 0 && l.Lng == 0
}

// DistanceKm returns the haversine distance between two locations.
func (l Location) DistanceKm(other Location) float64 {
	const earthRadiusKm = 6371.0

	lat1 := l.Lat * math.Pi / 180.0
	lat2 := other.Lat * math.Pi / 180.0
	dLat := (other.Lat - l.Lat) * math.Pi / 180.0
	dLng := (other.Lng - l.Lng) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
