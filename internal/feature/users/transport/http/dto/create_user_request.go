// Package dto defines the HTTP transport data transfer objects for the
// users feature.
package dto

// LocationItem is one location record in a create request.
type LocationItem struct {
	Country  string `json:"country"`
	District string `json:"district"`
	Street   string `json:"street"`
}

// CreateUserReq is the request body for POST /api/users. Name and password
// are mandatory; the rest is optional. The Location key matches the
// relation name the API has always used.
type CreateUserReq struct {
	Name      string         `json:"name"`
	Salary    *float64       `json:"salary"`
	Status    *bool          `json:"status"`
	Locations []LocationItem `json:"Location"`
	Password  string         `json:"password"`
}
