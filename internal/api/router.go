package api

import (
	"net/http"

	"medicine-finder-service/internal/api/handlers"
	"medicine-finder-service/internal/ports"
	"medicine-finder-service/internal/services"
)

// RouterDeps carries the ports the HTTP layer is wired to. Cache,
// Objects and Location are optional; their endpoints degrade or report
// unavailability when nil.
type RouterDeps struct {
	Stores    ports.StoreRepository
	Medicines ports.MedicineRepository
	Customers ports.CustomerRepository
	Cache     ports.SearchCache
	Objects   ports.ObjectStore
	Location  *services.LocationService
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	searchHandler := &handlers.SearchHandler{
		Repo:    deps.Medicines,
		Cache:   deps.Cache,
		History: deps.Customers,
	}
	medicineHandler := &handlers.MedicineHandler{
		Medicines: deps.Medicines,
		Stores:    deps.Stores,
		Customers: deps.Customers,
	}
	storeHandler := &handlers.StoreHandler{
		Stores:    deps.Stores,
		Medicines: deps.Medicines,
		Customers: deps.Customers,
	}
	customerHandler := &handlers.CustomerHandler{
		Customers: deps.Customers,
		Stores:    deps.Stores,
	}
	uploadHandler := &handlers.UploadHandler{Store: deps.Objects}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("GET /medicines/search", searchHandler.Search)
	mux.HandleFunc("GET /medicines/categories", medicineHandler.Categories)
	mux.HandleFunc("GET /medicines/retailer/inventory", medicineHandler.Inventory)
	mux.HandleFunc("GET /medicines/retailer/low-stock", medicineHandler.LowStock)
	mux.HandleFunc("GET /medicines/{id}", medicineHandler.Get)
	mux.HandleFunc("PUT /medicines/{id}", medicineHandler.Update)
	mux.HandleFunc("DELETE /medicines/{id}", medicineHandler.Delete)

	mux.HandleFunc("POST /stores", storeHandler.Create)
	mux.HandleFunc("GET /stores/my-stores", storeHandler.MyStores)
	mux.HandleFunc("GET /stores/nearby", storeHandler.Nearby)
	mux.HandleFunc("GET /stores/dashboard/stats", storeHandler.DashboardStats)
	mux.HandleFunc("GET /stores/{id}", storeHandler.Get)
	mux.HandleFunc("PUT /stores/{id}", storeHandler.Update)
	mux.HandleFunc("DELETE /stores/{id}", storeHandler.Delete)
	mux.HandleFunc("GET /stores/{id}/medicines", storeHandler.ListMedicines)
	mux.HandleFunc("POST /stores/{id}/medicines", storeHandler.AddMedicine)
	mux.HandleFunc("GET /stores/{id}/reviews", storeHandler.Reviews)

	mux.HandleFunc("POST /customer/reviews", customerHandler.CreateReview)
	mux.HandleFunc("GET /customer/reviews", customerHandler.MyReviews)
	mux.HandleFunc("POST /customer/favorites/{storeID}", customerHandler.AddFavorite)
	mux.HandleFunc("DELETE /customer/favorites/{storeID}", customerHandler.RemoveFavorite)
	mux.HandleFunc("GET /customer/favorites", customerHandler.ListFavorites)
	mux.HandleFunc("GET /customer/notifications", customerHandler.ListNotifications)
	mux.HandleFunc("PUT /customer/notifications/read-all", customerHandler.MarkAllNotificationsRead)
	mux.HandleFunc("PUT /customer/notifications/{id}/read", customerHandler.MarkNotificationRead)
	mux.HandleFunc("POST /customer/alerts", customerHandler.CreateAlert)
	mux.HandleFunc("GET /customer/alerts", customerHandler.ListAlerts)
	mux.HandleFunc("DELETE /customer/alerts/{id}", customerHandler.DeleteAlert)
	mux.HandleFunc("GET /customer/search-history", customerHandler.SearchHistory)
	mux.HandleFunc("GET /customer/dashboard/stats", customerHandler.DashboardStats)

	mux.HandleFunc("POST /upload/image", uploadHandler.Upload)
	mux.HandleFunc("DELETE /upload/image", uploadHandler.Delete)

	if deps.Location != nil {
		locationHandler := &handlers.LocationHandler{Service: deps.Location}
		mux.HandleFunc("GET /location", locationHandler.Get)
		mux.HandleFunc("PUT /location", locationHandler.Set)
		mux.HandleFunc("DELETE /location", locationHandler.Clear)
		mux.HandleFunc("POST /location/refresh", locationHandler.Refresh)
		mux.HandleFunc("GET /location/distance", locationHandler.Distance)
	}

	return requestIDMiddleware(loggingMiddleware(mux))
}
