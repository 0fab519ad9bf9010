package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"remotejobs-engine/internal/events"
	"remotejobs-engine/internal/optimise"
	"remotejobs-engine/internal/search"
	"remotejobs-engine/internal/store"
)

type JobsHandler struct {
	DB            *sql.DB
	Hub           *events.Hub
	NotifyListing func(ctx context.Context, l store.Listing) (int, error)
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	f := search.Parse(r.URL.Query(), search.Jobs)

	page, err := store.SearchListings(r.Context(), h.DB, f)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "search_failed", err.Error())
		return
	}
	writeJSON(w, jobsResponse{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Jobs:       page.Items,
	})
}

// Optimised serves /jobs/optimised/{userID}: translate the stored onboarding
// answers and run the exact same search path. A record that translates to no
// constraints gets the plain unfiltered first page, never an empty trap.
func (h JobsHandler) Optimised(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/jobs/optimised/")
	if userID == "" || strings.Contains(userID, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_user", "invalid user id")
		return
	}

	rec, ok, err := store.GetPreferences(r.Context(), h.DB, userID)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "preferences_failed", err.Error())
		return
	}

	f := search.Filters{Page: 1, PageSize: search.Jobs.DefaultPageSize, Sort: search.SortDate}
	if ok {
		if t := optimise.Translate(rec); !t.IsEmpty() {
			f = t
		}
	}

	page, err := store.SearchListings(r.Context(), h.DB, f)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "search_failed", err.Error())
		return
	}
	writeJSON(w, jobsResponse{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Jobs:       page.Items,
	})
}

type createListingReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CompanyID   string   `json:"companyId"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
	JobType     string   `json:"jobType"`
	RemoteScope string   `json:"remoteScope"`
	SalaryMin   *float64 `json:"salaryMin"`
	SalaryMax   *float64 `json:"salaryMax"`
	Location    string   `json:"location"`
	Featured    bool     `json:"featured"`
	Premium     bool     `json:"premium"`
}

// Create inserts a listing and fires the real-time notifier: the new listing
// alone is matched against active subscriptions, same rules as the digest.
func (h JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createListingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_title", "title is required")
		return
	}
	if strings.TrimSpace(req.CompanyID) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_company", "companyId is required")
		return
	}

	l := store.NewListing(store.Listing{
		Title:       req.Title,
		Description: req.Description,
		CompanyID:   req.CompanyID,
		Tags:        req.Tags,
		Category:    req.Category,
		JobType:     req.JobType,
		RemoteScope: req.RemoteScope,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Location:    req.Location,
		Featured:    req.Featured,
		Premium:     req.Premium,
	})

	if err := store.InsertListing(r.Context(), h.DB, l); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "insert_failed", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeListingCreated, 1, map[string]any{"id": l.ID}))

	if h.NotifyListing != nil {
		// best-effort; a mail outage must not fail the posting
		if _, err := h.NotifyListing(r.Context(), l); err != nil {
			log.Printf("[jobs] notify failed listing=%s err=%v", l.ID, err)
		}
	}

	writeJSON(w, l)
}
