package domain

import (
	"math"
	"testing"
)

func TestHaversineIdenticalPoints(t *testing.T) {
	coords := []Coordinates{
		{Lat: 0, Lon: 0},
		{Lat: 28.6139, Lon: 77.2090},
		{Lat: -90, Lon: 180},
		{Lat: 45.5, Lon: -122.6},
	}

	for _, c := range coords {
		if d := Haversine(c, c); d != 0 {
			t.Errorf("Haversine(%v, %v) = %v, want exactly 0", c, c, d)
		}
	}
}

func TestHaversineSymmetry(t *testing.T) {
	pairs := [][2]Coordinates{
		{{Lat: 28.6139, Lon: 77.2090}, {Lat: 19.0760, Lon: 72.8777}},
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 180}},
		{{Lat: -33.8688, Lon: 151.2093}, {Lat: 51.5074, Lon: -0.1278}},
		{{Lat: 12.34, Lon: -56.78}, {Lat: -12.34, Lon: 56.78}},
	}

	for _, p := range pairs {
		ab := Haversine(p[0], p[1])
		ba := Haversine(p[1], p[0])
		if math.Abs(ab-ba) > 1e-6 {
			t.Errorf("asymmetric: d(a,b)=%v d(b,a)=%v", ab, ba)
		}
		if ab < 0 {
			t.Errorf("negative distance %v for %v", ab, p)
		}
	}
}

func TestHaversineAntipodal(t *testing.T) {
	d := Haversine(Coordinates{Lat: 0, Lon: 0}, Coordinates{Lat: 0, Lon: 180})
	if math.Abs(d-20015.1) > 1.0 {
		t.Errorf("antipodal distance = %v, want 20015.1 +/- 1", d)
	}
	if d > math.Pi*EarthRadiusKm+1 {
		t.Errorf("antipodal distance %v exceeds half circumference", d)
	}
}

func TestHaversineKnownFixture(t *testing.T) {
	delhi := Coordinates{Lat: 28.6139, Lon: 77.2090}
	mumbai := Coordinates{Lat: 19.0760, Lon: 72.8777}

	d := Haversine(delhi, mumbai)
	if math.Abs(d-1154) > 5 {
		t.Errorf("Delhi-Mumbai distance = %v, want 1154 +/- 5", d)
	}
}

func TestRoundKm(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.234, 1.23},
		{1.235, 1.24},
		{1154.3291, 1154.33},
	}

	for _, c := range cases {
		if got := RoundKm(c.in); got != c.want {
			t.Errorf("RoundKm(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestValidCoordinate(t *testing.T) {
	valid := [][2]float64{{0, 0}, {-90, -180}, {90, 180}, {28.6139, 77.2090}}
	for _, v := range valid {
		if !ValidCoordinate(v[0], v[1]) {
			t.Errorf("ValidCoordinate(%v, %v) = false, want true", v[0], v[1])
		}
	}

	invalid := [][2]float64{{-91, 0}, {91, 0}, {0, -181}, {0, 181}}
	for _, v := range invalid {
		if ValidCoordinate(v[0], v[1]) {
			t.Errorf("ValidCoordinate(%v, %v) = true, want false", v[0], v[1])
		}
	}
}
