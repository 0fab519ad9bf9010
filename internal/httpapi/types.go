package httpapi

import "remotejobs-engine/internal/store"

type jobsResponse struct {
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	Total      int             `json:"total"`
	TotalPages int             `json:"totalPages"`
	Jobs       []store.Listing `json:"jobs"`
}

type companiesResponse struct {
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	Total      int             `json:"total"`
	TotalPages int             `json:"totalPages"`
	Companies  []store.Company `json:"companies"`
}

type runResponse struct {
	OK   bool `json:"ok"`
	Sent int  `json:"sent"`
}
