package dto

import "time"

type MedicineResponse struct {
	ID                   string     `json:"id"`
	StoreID              string     `json:"store_id"`
	CategoryID           *string    `json:"category_id"`
	Name                 string     `json:"name"`
	GenericName          string     `json:"generic_name"`
	Manufacturer         string     `json:"manufacturer"`
	Description          string     `json:"description"`
	Dosage               string     `json:"dosage"`
	Price                float64    `json:"price"`
	Quantity             int        `json:"quantity"`
	Unit                 string     `json:"unit"`
	ExpiryDate           *time.Time `json:"expiry_date"`
	BatchNumber          string     `json:"batch_number"`
	RequiresPrescription bool       `json:"requires_prescription"`
	ImageURL             string     `json:"image_url"`
	IsAvailable          bool       `json:"is_available"`
	MinStockAlert        int        `json:"min_stock_alert"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type ListMedicinesResponse struct {
	Medicines []MedicineResponse `json:"medicines"`
}

type CreateMedicineRequest struct {
	CategoryID           *string    `json:"category_id"`
	Name                 string     `json:"name"`
	GenericName          string     `json:"generic_name"`
	Manufacturer         string     `json:"manufacturer"`
	Description          string     `json:"description"`
	Dosage               string     `json:"dosage"`
	Price                float64    `json:"price"`
	Quantity             int        `json:"quantity"`
	Unit                 string     `json:"unit"`
	ExpiryDate           *time.Time `json:"expiry_date"`
	BatchNumber          string     `json:"batch_number"`
	RequiresPrescription bool       `json:"requires_prescription"`
	ImageURL             string     `json:"image_url"`
	IsAvailable          *bool      `json:"is_available"`
	MinStockAlert        *int       `json:"min_stock_alert"`
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
}

type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type SearchResultResponse struct {
	MedicineID   string  `json:"medicine_id"`
	MedicineName string  `json:"medicine_name"`
	GenericName  string  `json:"generic_name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	ImageURL     string  `json:"image_url"`
	StoreID      string  `json:"store_id"`
	StoreName    string  `json:"store_name"`
	StoreAddress string  `json:"store_address"`
	StoreLat     float64 `json:"store_latitude"`
	StoreLon     float64 `json:"store_longitude"`
	StorePhone   string  `json:"store_phone"`
	DistanceKm   float64 `json:"distance_km"`
}

type SearchResponse struct {
	Results []SearchResultResponse `json:"results"`
	Count   int                    `json:"count"`
}
