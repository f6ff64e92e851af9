// Package dto defines the HTTP transport data transfer objects for the
// auth feature.
package dto

// LoginReq is the request body for /auth/login. Both fields are required;
// presence is checked in the handler so the error message matches the API
// contract exactly.
type LoginReq struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}
