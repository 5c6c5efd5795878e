package handlers

import (
	"net/http"

	"medicine-finder-service/internal/api/dto"
	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/services"
)

// LocationHandler manages the server-held last-known position used by
// clients without their own position source.
type LocationHandler struct {
	Service *services.LocationService
}

func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	pos, ok := h.Service.Get()
	if !ok {
		if err := h.Service.Err(); err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeDomainError(w, r, domain.ErrPositionUnavailable)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LocationResponse{
		Latitude:  pos.Lat,
		Longitude: pos.Lon,
	})
}

func (h *LocationHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req dto.SetLocationRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.Set(req.Latitude, req.Longitude); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LocationResponse{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
}

func (h *LocationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Service.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Refresh forces a provider read, bypassing nothing: a fresh enough fix
// is still reused per the service's validity window.
func (h *LocationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	pos, err := h.Service.Locate(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LocationResponse{
		Latitude:  pos.Lat,
		Longitude: pos.Lon,
	})
}

func (h *LocationHandler) Distance(w http.ResponseWriter, r *http.Request) {
	lat, err := queryFloat(r, "latitude")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	lon, err := queryFloat(r, "longitude")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	km, err := h.Service.DistanceFrom(lat, lon)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{DistanceKm: km})
}
