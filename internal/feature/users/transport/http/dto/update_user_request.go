package dto

// LocationUpsertItem is one location record in an update request. A known
// id updates that row in place; a missing id inserts a new row.
type LocationUpsertItem struct {
	ID       *uint  `json:"id"`
	Country  string `json:"country"`
	District string `json:"district"`
	Street   string `json:"street"`
}

// UpdateUserReq is the request body for PATCH /api/users/:id. Every field
// is optional; omitted fields keep their prior value.
type UpdateUserReq struct {
	Name      *string              `json:"name"`
	Salary    *float64             `json:"salary"`
	Status    *bool                `json:"status"`
	Locations []LocationUpsertItem `json:"Location"`
	Password  *string              `json:"password"`
}
