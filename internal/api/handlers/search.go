package handlers

import (
	"net/http"

	"medicine-finder-service/internal/api/dto"
	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/ports"
	"medicine-finder-service/internal/services"
)

// SearchHandler exposes the nearby-medicine search.
type SearchHandler struct {
	Repo    ports.MedicineRepository
	Cache   ports.SearchCache
	History ports.SearchHistoryRecorder
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

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
	radius, err := queryFloatDefault(r, "radius_km", services.DefaultRadiusKm)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	req := services.SearchMedicinesRequest{
		Query:    q.Get("query"),
		Origin:   domain.Coordinates{Lat: lat, Lon: lon},
		RadiusKm: radius,
	}
	if userID, ok := callerID(r); ok {
		req.UserID = &userID
	}

	results, err := services.SearchMedicines(r.Context(), req, h.Repo, h.Cache, h.History)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.SearchResponse{
		Results: make([]dto.SearchResultResponse, 0, len(results)),
		Count:   len(results),
	}
	for _, sr := range results {
		res.Results = append(res.Results, dto.SearchResultResponse{
			MedicineID:   sr.MedicineID.String(),
			MedicineName: sr.MedicineName,
			GenericName:  sr.GenericName,
			Price:        sr.Price,
			Quantity:     sr.Quantity,
			ImageURL:     sr.ImageURL,
			StoreID:      sr.StoreID.String(),
			StoreName:    sr.StoreName,
			StoreAddress: sr.StoreAddress,
			StoreLat:     sr.StoreLat,
			StoreLon:     sr.StoreLon,
			StorePhone:   sr.StorePhone,
			DistanceKm:   sr.DistanceKm,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
