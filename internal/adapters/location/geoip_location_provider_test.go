package location

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medicine-finder-service/internal/domain"
)

func TestGeoIPLocationProviderSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","lat":28.6139,"lon":77.2090}`))
	}))
	defer srv.Close()

	p := NewGeoIPLocationProvider(srv.URL, srv.Client())

	pos, err := p.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if pos.Lat != 28.6139 || pos.Lon != 77.2090 {
		t.Errorf("position = %+v", pos)
	}
}

func TestGeoIPLocationProviderFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer srv.Close()

	p := NewGeoIPLocationProvider(srv.URL, srv.Client())

	_, err := p.Current(context.Background())
	if !errors.Is(err, domain.ErrPositionUnavailable) {
		t.Fatalf("err = %v, want ErrPositionUnavailable", err)
	}
}

func TestGeoIPLocationProviderRejectsBadCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","lat":999,"lon":0}`))
	}))
	defer srv.Close()

	p := NewGeoIPLocationProvider(srv.URL, srv.Client())

	_, err := p.Current(context.Background())
	if !errors.Is(err, domain.ErrPositionUnavailable) {
		t.Fatalf("err = %v, want ErrPositionUnavailable", err)
	}
}
