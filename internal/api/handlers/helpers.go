package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"medicine-finder-service/internal/api/dto"
	"medicine-finder-service/internal/domain"
)

// Caller identity arrives as an opaque header; authentication itself is
// handled upstream of this service.
const userIDHeader = "X-User-ID"

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps service and repository error kinds onto HTTP
// statuses. Unknown errors are logged and reported as 500 without
// leaking internals.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, r, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, r, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrDuplicate):
		writeError(w, r, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrPermissionDenied):
		writeError(w, r, http.StatusForbidden, "location permission denied")
	case errors.Is(err, domain.ErrLocationTimeout):
		writeError(w, r, http.StatusGatewayTimeout, "location request timed out")
	case errors.Is(err, domain.ErrPositionUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "position unavailable")
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeStrict rejects unknown fields and trailing JSON values.
func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}

	return nil
}

// callerID reads the authenticated user id from the request headers.
func callerID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.Header.Get(userIDHeader))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.Invalid(name, "must be a valid uuid")
	}
	return id, nil
}

// queryFloat parses a required float query parameter.
func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, domain.Invalid(name, "is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.Invalid(name, "must be a number")
	}
	return v, nil
}

// queryFloatDefault parses an optional float query parameter.
func queryFloatDefault(r *http.Request, name string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.Invalid(name, "must be a number")
	}
	return v, nil
}

func storeResponse(s *domain.Store) dto.StoreResponse {
	return dto.StoreResponse{
		ID:            s.ID.String(),
		OwnerID:       s.OwnerID.String(),
		Name:          s.Name,
		Description:   s.Description,
		Address:       s.Address,
		City:          s.City,
		State:         s.State,
		Pincode:       s.Pincode,
		Latitude:      s.Location.Lat,
		Longitude:     s.Location.Lon,
		Phone:         s.Phone,
		Email:         s.Email,
		LicenseNumber: s.LicenseNumber,
		ImageURL:      s.ImageURL,
		IsOpen:        s.IsOpen,
		OpeningTime:   s.OpeningTime,
		ClosingTime:   s.ClosingTime,
		IsVerified:    s.IsVerified,
		Rating:        s.Rating,
		TotalReviews:  s.TotalReviews,
		CreatedAt:     s.CreatedAt,
	}
}

func medicineResponse(m *domain.Medicine) dto.MedicineResponse {
	var categoryID *string
	if m.CategoryID != nil {
		s := m.CategoryID.String()
		categoryID = &s
	}

	return dto.MedicineResponse{
		ID:                   m.ID.String(),
		StoreID:              m.StoreID.String(),
		CategoryID:           categoryID,
		Name:                 m.Name,
		GenericName:          m.GenericName,
		Manufacturer:         m.Manufacturer,
		Description:          m.Description,
		Dosage:               m.Dosage,
		Price:                m.Price,
		Quantity:             m.Quantity,
		Unit:                 m.Unit,
		ExpiryDate:           m.ExpiryDate,
		BatchNumber:          m.BatchNumber,
		RequiresPrescription: m.RequiresRx,
		ImageURL:             m.ImageURL,
		IsAvailable:          m.IsAvailable,
		MinStockAlert:        m.MinStockAlert,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
