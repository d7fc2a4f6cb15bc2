package model

// Location is an append-only (state, district, area) triple; the triple is
// unique across the table.
type Location struct {
	Base
	State    string `json:"state" db:"state"`
	District string `json:"district" db:"district"`
	Area     string `json:"area" db:"area"`
}

type CreateLocationRequest struct {
	State    string `json:"state" binding:"required"`
	District string `json:"district" binding:"required"`
	Area     string `json:"area" binding:"required"`
}
