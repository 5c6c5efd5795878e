package dto

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type SetLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type DistanceResponse struct {
	DistanceKm float64 `json:"distance_km"`
}

type UploadResponse struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

type DeleteUploadRequest struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
}
