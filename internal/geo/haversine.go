package geo

import "math"

// earthRadiusM is the mean Earth radius in meters used for the spherical model.
const earthRadiusM = 6371000.0

// Point is a coordinate pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point lies within the WGS84 coordinate ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// DistanceM returns the great-circle distance between a and b in meters,
// computed with the haversine formula on a spherical Earth.
func DistanceM(a, b Point) float64 {
	p1 := radians(a.Lat)
	p2 := radians(b.Lat)
	dp := radians(b.Lat - a.Lat)
	dl := radians(b.Lng - a.Lng)

	h := math.Sin(dp/2)*math.Sin(dp/2) + math.Cos(p1)*math.Cos(p2)*math.Sin(dl/2)*math.Sin(dl/2)
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
