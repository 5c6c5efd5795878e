package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"medicine-finder-service/internal/api/dto"
	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/ports"
	"medicine-finder-service/internal/services"
)

// StoreHandler exposes store management for retailers and store
// discovery for customers.
type StoreHandler struct {
	Stores    ports.StoreRepository
	Medicines ports.MedicineRepository
	Customers ports.CustomerRepository
}

func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	var req dto.CreateStoreRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	store, err := storeFromRequest(&req, userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.Stores.CreateStore(r.Context(), store); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, storeResponse(store))
}

func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	store, err := h.Stores.GetStore(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, storeResponse(store))
}

func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var req dto.CreateStoreRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	prev, err := h.ownedStore(r, userID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	store, err := storeFromRequest(&req, userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	store.ID = id
	// Verification and rating are system-managed, not caller-writable.
	store.IsVerified = prev.IsVerified
	store.Rating = prev.Rating
	store.TotalReviews = prev.TotalReviews
	store.CreatedAt = prev.CreatedAt

	if err := h.Stores.UpdateStore(r.Context(), store); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, storeResponse(store))
}

func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if _, err := h.ownedStore(r, userID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.Stores.DeleteStore(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *StoreHandler) MyStores(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	stores, err := h.Stores.ListByOwner(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListStoresResponse{Stores: make([]dto.StoreResponse, 0, len(stores))}
	for _, s := range stores {
		res.Stores = append(res.Stores, storeResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *StoreHandler) Nearby(w http.ResponseWriter, r *http.Request) {
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

	origin := domain.Coordinates{Lat: lat, Lon: lon}
	stores, err := services.NearbyStores(r.Context(), origin, radius, h.Stores)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListNearbyStoresResponse{
		Stores: make([]dto.NearbyStoreResponse, 0, len(stores)),
	}
	for _, ns := range stores {
		res.Stores = append(res.Stores, dto.NearbyStoreResponse{
			StoreResponse: storeResponse(&ns.Store),
			DistanceKm:    ns.DistanceKm,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// ListMedicines serves the public inventory of one store.
func (h *StoreHandler) ListMedicines(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if _, err := h.Stores.GetStore(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	availableOnly := r.URL.Query().Get("available_only") == "true"
	meds, err := h.Medicines.ListByStore(r.Context(), id, availableOnly)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, listMedicinesResponse(meds))
}

// AddMedicine creates a medicine under a store the caller owns.
func (h *StoreHandler) AddMedicine(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	storeID, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var req dto.CreateMedicineRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	store, err := h.ownedStore(r, userID, storeID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	med, err := medicineFromRequest(&req, storeID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.Medicines.CreateMedicine(r.Context(), med); err != nil {
		writeDomainError(w, r, err)
		return
	}

	if med.Searchable() {
		notifyNewStock(r, med, store, h.Customers)
	}

	writeJSON(w, r, http.StatusCreated, medicineResponse(med))
}

func (h *StoreHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if _, err := h.Stores.GetStore(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	reviews, err := h.Customers.ListReviewsByStore(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, listReviewsResponse(reviews))
}

// DashboardStats summarizes the caller's retail footprint.
func (h *StoreHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	stores, err := h.Stores.ListByOwner(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	meds, err := h.Medicines.ListByOwner(r.Context(), userID, nil)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	stats := dto.RetailerStatsResponse{
		TotalMedicines: len(meds),
		TotalStores:    len(stores),
	}
	for _, m := range meds {
		if m.LowStock() {
			stats.LowStockCount++
		}
	}

	writeJSON(w, r, http.StatusOK, stats)
}

func (h *StoreHandler) ownedStore(r *http.Request, userID, storeID uuid.UUID) (*domain.Store, error) {
	store, err := h.Stores.GetStore(r.Context(), storeID)
	if err != nil {
		return nil, err
	}
	if store.OwnerID != userID {
		return nil, domain.ErrForbidden
	}
	return store, nil
}

func storeFromRequest(req *dto.CreateStoreRequest, ownerID uuid.UUID) (*domain.Store, error) {
	if req.Name == "" {
		return nil, domain.Invalid("name", "is required")
	}
	if req.Address == "" {
		return nil, domain.Invalid("address", "is required")
	}
	if !domain.ValidCoordinate(req.Latitude, req.Longitude) {
		return nil, domain.Invalid("coordinates", "latitude must be in [-90,90] and longitude in [-180,180]")
	}

	store := &domain.Store{
		OwnerID:       ownerID,
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Pincode:       req.Pincode,
		Location:      domain.Coordinates{Lat: req.Latitude, Lon: req.Longitude},
		Phone:         req.Phone,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
		ImageURL:      req.ImageURL,
		IsOpen:        true,
		OpeningTime:   req.OpeningTime,
		ClosingTime:   req.ClosingTime,
	}
	if req.IsOpen != nil {
		store.IsOpen = *req.IsOpen
	}

	return store, nil
}
