package models

// PaginatedResponse wraps one page of a list endpoint. Page is 1-based.
type PaginatedResponse struct {
	Data     any `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}
