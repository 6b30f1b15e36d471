package api

// swagger:model api.PingResponse
type PingResponse struct {
	Message string `json:"message" example:"pong"`
}

// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string `json:"message" example:"database unhealthy"`
}
