package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"medicine-finder-service/internal/api/dto"
	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/ports"
	"medicine-finder-service/internal/services"
)

// CustomerHandler groups the customer-side endpoints: reviews,
// favorites, notifications, medicine alerts, search history and
// dashboard stats. Every endpoint requires an identified caller.
type CustomerHandler struct {
	Customers ports.CustomerRepository
	Stores    ports.StoreRepository
}

// ============= Reviews =============

func (h *CustomerHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	var req dto.CreateReviewRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		writeDomainError(w, r, domain.Invalid("store_id", "must be a valid uuid"))
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeDomainError(w, r, domain.Invalid("rating", "must be between 1 and 5"))
		return
	}

	if _, err := h.Stores.GetStore(r.Context(), storeID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	review := &domain.Review{
		UserID:   userID,
		StoreID:  storeID,
		Rating:   req.Rating,
		Comment:  strings.TrimSpace(req.Comment),
		UserName: strings.TrimSpace(req.UserName),
	}
	if err := h.Customers.CreateReview(r.Context(), review); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, reviewResponse(review))
}

func (h *CustomerHandler) MyReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	reviews, err := h.Customers.ListReviewsByUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, listReviewsResponse(reviews))
}

// ============= Favorites =============

func (h *CustomerHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	storeID, err := pathUUID(r, "storeID")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if _, err := h.Stores.GetStore(r.Context(), storeID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.Customers.AddFavorite(r.Context(), userID, storeID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *CustomerHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	storeID, err := pathUUID(r, "storeID")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.Customers.RemoveFavorite(r.Context(), userID, storeID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CustomerHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	favorites, err := h.Customers.ListFavorites(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListFavoritesResponse{
		Favorites: make([]dto.FavoriteResponse, 0, len(favorites)),
	}
	for _, f := range favorites {
		fr := dto.FavoriteResponse{
			ID:        f.ID.String(),
			StoreID:   f.StoreID.String(),
			CreatedAt: f.CreatedAt,
		}
		if f.Store != nil {
			sr := storeResponse(f.Store)
			fr.Store = &sr
		}
		res.Favorites = append(res.Favorites, fr)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// ============= Notifications =============

func (h *CustomerHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	unreadOnly := r.URL.Query().Get("unread_only") == "true"
	notifications, err := h.Customers.ListNotifications(r.Context(), userID, unreadOnly)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListNotificationsResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
	}
	for _, n := range notifications {
		res.Notifications = append(res.Notifications, dto.NotificationResponse{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			IsRead:    n.IsRead,
			Link:      n.Link,
			CreatedAt: n.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *CustomerHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Customers.MarkNotificationRead(r.Context(), userID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CustomerHandler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	if err := h.Customers.MarkAllNotificationsRead(r.Context(), userID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ============= Medicine alerts =============

func (h *CustomerHandler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	var req dto.CreateAlertRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	name := strings.TrimSpace(req.MedicineName)
	if name == "" {
		writeDomainError(w, r, domain.Invalid("medicine_name", "is required"))
		return
	}
	if !domain.ValidCoordinate(req.Latitude, req.Longitude) {
		writeDomainError(w, r, domain.Invalid("coordinates", "latitude must be in [-90,90] and longitude in [-180,180]"))
		return
	}

	radius := req.RadiusKm
	if radius == 0 {
		radius = services.DefaultRadiusKm
	}
	if radius < 0 || radius > services.MaxRadiusKm {
		writeDomainError(w, r, domain.Invalid("radius_km", "must be positive and within range"))
		return
	}

	alert := &domain.MedicineAlert{
		UserID:       userID,
		MedicineName: name,
		Origin:       domain.Coordinates{Lat: req.Latitude, Lon: req.Longitude},
		RadiusKm:     radius,
	}
	if err := h.Customers.CreateAlert(r.Context(), alert); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, alertResponse(alert))
}

func (h *CustomerHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	alerts, err := h.Customers.ListAlertsByUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListAlertsResponse{Alerts: make([]dto.AlertResponse, 0, len(alerts))}
	for _, a := range alerts {
		res.Alerts = append(res.Alerts, alertResponse(a))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *CustomerHandler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Customers.DeleteAlert(r.Context(), userID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ============= Search history and stats =============

func (h *CustomerHandler) SearchHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			writeDomainError(w, r, domain.Invalid("limit", "must be between 1 and 50"))
			return
		}
		limit = n
	}

	records, err := h.Customers.ListSearchHistory(r.Context(), userID, limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListSearchHistoryResponse{
		History: make([]dto.SearchRecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		res.History = append(res.History, dto.SearchRecordResponse{
			ID:           rec.ID.String(),
			Query:        rec.Query,
			Latitude:     rec.Origin.Lat,
			Longitude:    rec.Origin.Lon,
			ResultsCount: rec.ResultsCount,
			CreatedAt:    rec.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *CustomerHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing or invalid user id")
		return
	}

	stats, err := h.Customers.CustomerStats(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CustomerStatsResponse{
		TotalSearches:  stats.TotalSearches,
		FavoriteStores: stats.FavoriteStores,
		ActiveAlerts:   stats.ActiveAlerts,
	})
}

func reviewResponse(rv *domain.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        rv.ID.String(),
		UserID:    rv.UserID.String(),
		StoreID:   rv.StoreID.String(),
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		UserName:  rv.UserName,
		CreatedAt: rv.CreatedAt,
	}
}

func listReviewsResponse(reviews []*domain.Review) dto.ListReviewsResponse {
	res := dto.ListReviewsResponse{
		Reviews: make([]dto.ReviewResponse, 0, len(reviews)),
	}
	for _, rv := range reviews {
		res.Reviews = append(res.Reviews, reviewResponse(rv))
	}
	return res
}

func alertResponse(a *domain.MedicineAlert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:           a.ID.String(),
		MedicineName: a.MedicineName,
		Latitude:     a.Origin.Lat,
		Longitude:    a.Origin.Lon,
		RadiusKm:     a.RadiusKm,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
	}
}
