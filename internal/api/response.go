// Package api defines the JSON response envelope shared by all handlers.
package api

// Response is the envelope every endpoint answers with. Status mirrors the
// HTTP status code so clients reading only the body see the same outcome.
type Response struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LoginResponse is the envelope for a successful authentication, carrying
// the signed bearer token at the top level.
type LoginResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Token   string `json:"token"`
}
