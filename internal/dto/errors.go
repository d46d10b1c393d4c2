package dto

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Code      string         `json:"code" example:"WORK_LOG_NOT_FOUND"`
	Message   string         `json:"message" example:"Work log not found"`
	Details   map[string]any `json:"details"`
	RequestID string         `json:"requestId"`
}

// OkResponse acknowledges operations that return no resource.
type OkResponse struct {
	Ok bool `json:"ok" example:"true"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
