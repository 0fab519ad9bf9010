package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotejobs-engine/internal/events"
	"remotejobs-engine/internal/store"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))
	return db
}

func TestJobsList_Envelope(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	co := store.NewCompany(store.Company{Name: "Acme"})
	require.NoError(t, store.InsertCompany(ctx, db.Pool, co))
	l := store.NewListing(store.Listing{Title: "Go Engineer", CompanyID: co.ID, Category: "software-development"})
	require.NoError(t, store.InsertListing(ctx, db.Pool, l))

	h := JobsHandler{DB: db.Pool, Hub: events.NewHub()}
	req := httptest.NewRequest(http.MethodGet, "/jobs?q=go&limit=abc", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp jobsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize, "garbage limit falls back to the jobs default")
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, "Go Engineer", resp.Jobs[0].Title)
}

func TestJobsCreate_InsertsAndNotifies(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	co := store.NewCompany(store.Company{Name: "Acme"})
	require.NoError(t, store.InsertCompany(ctx, db.Pool, co))

	var notified *store.Listing
	h := JobsHandler{
		DB:  db.Pool,
		Hub: events.NewHub(),
		NotifyListing: func(ctx context.Context, l store.Listing) (int, error) {
			notified = &l
			return 1, nil
		},
	}

	body := `{"title":"React Dev","companyId":"` + co.ID + `","tags":["react"],"jobType":"full_time"}`
	req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var created store.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID, "factory must assign the id before insert")
	assert.False(t, created.PostedAt.IsZero())

	require.NotNil(t, notified, "realtime notifier must fire for the new listing")
	assert.Equal(t, created.ID, notified.ID)

	got, err := store.GetListing(ctx, db.Pool, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "React Dev", got.Title)
}

func TestJobsCreate_Validation(t *testing.T) {
	h := JobsHandler{Hub: events.NewHub()}

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"companyId":"c1"}`},
		{"missing company", `{"title":"Dev"}`},
		{"bad json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Create(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestJobsOptimised_EmptyTranslationServesUnfiltered(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	co := store.NewCompany(store.Company{Name: "Acme"})
	require.NoError(t, store.InsertCompany(ctx, db.Pool, co))
	require.NoError(t, store.InsertListing(ctx, db.Pool, store.NewListing(store.Listing{
		Title: "Anything", CompanyID: co.ID, Category: "design",
	})))

	// only answer is an unmapped label: translation must not constrain
	require.NoError(t, store.SavePreferences(ctx, db.Pool, "u1", store.PreferenceRecord{
		AnswersByQuestion: map[int][]string{1: {"Quantum Baking"}},
	}))

	h := JobsHandler{DB: db.Pool, Hub: events.NewHub()}
	req := httptest.NewRequest(http.MethodGet, "/jobs/optimised/u1", nil)
	rec := httptest.NewRecorder()
	h.Optimised(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp jobsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total, "unconfigured user must not be degraded to an empty result set")
}

func TestJobsOptimised_AppliesStoredPreferences(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	co := store.NewCompany(store.Company{Name: "Acme"})
	require.NoError(t, store.InsertCompany(ctx, db.Pool, co))
	require.NoError(t, store.InsertListing(ctx, db.Pool, store.NewListing(store.Listing{
		Title: "Product Designer", CompanyID: co.ID, Category: "design",
	})))
	require.NoError(t, store.InsertListing(ctx, db.Pool, store.NewListing(store.Listing{
		Title: "Accountant", CompanyID: co.ID, Category: "finance-legal",
	})))

	require.NoError(t, store.SavePreferences(ctx, db.Pool, "u2", store.PreferenceRecord{
		SelectedCategory: "Design",
	}))

	h := JobsHandler{DB: db.Pool, Hub: events.NewHub()}
	req := httptest.NewRequest(http.MethodGet, "/jobs/optimised/u2", nil)
	rec := httptest.NewRecorder()
	h.Optimised(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp jobsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Product Designer", resp.Jobs[0].Title)
}
