package httpapi

import (
	"database/sql"
	"net/http"

	"remotejobs-engine/internal/search"
	"remotejobs-engine/internal/store"
)

type CompaniesHandler struct {
	DB *sql.DB
}

func (h CompaniesHandler) List(w http.ResponseWriter, r *http.Request) {
	f := search.Parse(r.URL.Query(), search.Companies)

	page, err := store.SearchCompanies(r.Context(), h.DB, f)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "search_failed", err.Error())
		return
	}
	writeJSON(w, companiesResponse{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Companies:  page.Items,
	})
}
