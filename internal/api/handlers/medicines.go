package handlers

import (
	"log"
	"net/http"

	"github.com/google/uuid"

	"medicine-finder-service/internal/api/dto"
	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/ports"
	"medicine-finder-service/internal/services"
)

// MedicineHandler exposes catalog reads plus retailer inventory
// management. Mutations are scoped to the owning retailer.
type MedicineHandler struct {
	Medicines ports.MedicineRepository
	Stores    ports.StoreRepository
	Customers ports.CustomerRepository
}

func (h *MedicineHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	med, err := h.Medicines.GetMedicine(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, medicineResponse(med))
}

func (h *MedicineHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req dto.CreateMedicineRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	prev, err := h.ownedMedicine(r, userID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	med, err := medicineFromRequest(&req, prev.StoreID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	med.ID = id
	med.CreatedAt = prev.CreatedAt

	if err := h.Medicines.UpdateMedicine(r.Context(), med); err != nil {
		writeDomainError(w, r, err)
		return
	}

	// Restock or re-enable makes the medicine visible again; tell
	// customers with a matching standing alert.
	if !prev.Searchable() && med.Searchable() {
		h.notifyAlerts(r, med)
	}

	writeJSON(w, r, http.StatusOK, medicineResponse(med))
}

func (h *MedicineHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if _, err := h.ownedMedicine(r, userID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.Medicines.DeleteMedicine(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Inventory lists the caller's medicines across all their stores, or a
// single store when store_id is given.
func (h *MedicineHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	var storeID *uuid.UUID
	if raw := r.URL.Query().Get("store_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeDomainError(w, r, domain.Invalid("store_id", "must be a valid uuid"))
			return
		}
		storeID = &id
	}

	meds, err := h.Medicines.ListByOwner(r.Context(), userID, storeID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, listMedicinesResponse(meds))
}

// LowStock lists the caller's medicines at or below their restock
// threshold.
func (h *MedicineHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	meds, err := h.Medicines.ListByOwner(r.Context(), userID, nil)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	low := make([]*domain.Medicine, 0, len(meds))
	for _, m := range meds {
		if m.LowStock() {
			low = append(low, m)
		}
	}

	writeJSON(w, r, http.StatusOK, listMedicinesResponse(low))
}

func (h *MedicineHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Medicines.ListCategories(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListCategoriesResponse{
		Categories: make([]dto.CategoryResponse, 0, len(cats)),
	}
	for _, c := range cats {
		res.Categories = append(res.Categories, dto.CategoryResponse{
			ID:          c.ID.String(),
			Name:        c.Name,
			Description: c.Description,
			IconURL:     c.IconURL,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// ownedMedicine loads a medicine and verifies the caller owns its store.
func (h *MedicineHandler) ownedMedicine(
	r *http.Request,
	userID uuid.UUID,
	medicineID uuid.UUID,
) (*domain.Medicine, error) {
	med, err := h.Medicines.GetMedicine(r.Context(), medicineID)
	if err != nil {
		return nil, err
	}

	store, err := h.Stores.GetStore(r.Context(), med.StoreID)
	if err != nil {
		return nil, err
	}
	if store.OwnerID != userID {
		return nil, domain.ErrForbidden
	}

	return med, nil
}

// notifyAlerts matches standing medicine alerts best effort; failures
// never fail the inventory mutation.
func (h *MedicineHandler) notifyAlerts(r *http.Request, med *domain.Medicine) {
	store, err := h.Stores.GetStore(r.Context(), med.StoreID)
	if err != nil {
		log.Printf("alert match skipped: medicine_id=%s err=%v", med.ID, err)
		return
	}

	notifyNewStock(r, med, store, h.Customers)
}

// notifyNewStock runs alert matching for a medicine that just became
// searchable. Best effort only.
func notifyNewStock(
	r *http.Request,
	med *domain.Medicine,
	store *domain.Store,
	customers ports.CustomerRepository,
) {
	if customers == nil {
		return
	}

	n, err := services.MatchAlerts(r.Context(), med, store, customers)
	if err != nil {
		log.Printf("alert match failed: medicine_id=%s err=%v", med.ID, err)
		return
	}
	if n > 0 {
		log.Printf("alerts matched: medicine_id=%s notified=%d", med.ID, n)
	}
}

func listMedicinesResponse(meds []*domain.Medicine) dto.ListMedicinesResponse {
	res := dto.ListMedicinesResponse{
		Medicines: make([]dto.MedicineResponse, 0, len(meds)),
	}
	for _, m := range meds {
		res.Medicines = append(res.Medicines, medicineResponse(m))
	}
	return res
}

// medicineFromRequest validates and converts an inbound medicine body.
func medicineFromRequest(req *dto.CreateMedicineRequest, storeID uuid.UUID) (*domain.Medicine, error) {
	if req.Name == "" {
		return nil, domain.Invalid("name", "is required")
	}
	if req.Price < 0 {
		return nil, domain.Invalid("price", "must not be negative")
	}
	if req.Quantity < 0 {
		return nil, domain.Invalid("quantity", "must not be negative")
	}

	med := &domain.Medicine{
		StoreID:       storeID,
		Name:          req.Name,
		GenericName:   req.GenericName,
		Manufacturer:  req.Manufacturer,
		Description:   req.Description,
		Dosage:        req.Dosage,
		Price:         req.Price,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		ExpiryDate:    req.ExpiryDate,
		BatchNumber:   req.BatchNumber,
		RequiresRx:    req.RequiresPrescription,
		ImageURL:      req.ImageURL,
		IsAvailable:   true,
		MinStockAlert: 10,
	}

	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, domain.Invalid("category_id", "must be a valid uuid")
		}
		med.CategoryID = &id
	}
	if req.IsAvailable != nil {
		med.IsAvailable = *req.IsAvailable
	}
	if req.MinStockAlert != nil {
		if *req.MinStockAlert < 0 {
			return nil, domain.Invalid("min_stock_alert", "must not be negative")
		}
		med.MinStockAlert = *req.MinStockAlert
	}

	return med, nil
}
