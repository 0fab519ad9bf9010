package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotejobs-engine/internal/search"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db
}

func seedCompany(t *testing.T, db *DB, name string) Company {
	t.Helper()
	c := NewCompany(Company{Name: name})
	require.NoError(t, InsertCompany(context.Background(), db.Pool, c))
	return c
}

func seedListing(t *testing.T, db *DB, l Listing) Listing {
	t.Helper()
	l = NewListing(l)
	require.NoError(t, InsertListing(context.Background(), db.Pool, l))
	return l
}

func idsOf(items []Listing) map[string]bool {
	out := map[string]bool{}
	for _, l := range items {
		out[l.ID] = true
	}
	return out
}

func TestSearchListings_UnionWithinDimension(t *testing.T) {
	db := openTestDB(t)
	co := seedCompany(t, db, "Acme")

	seedListing(t, db, Listing{Title: "UI Designer", CompanyID: co.ID, Category: "design"})
	seedListing(t, db, Listing{Title: "Copywriter", CompanyID: co.ID, Category: "marketing"})
	seedListing(t, db, Listing{Title: "Accountant", CompanyID: co.ID, Category: "finance-legal"})

	ctx := context.Background()
	both, err := SearchListings(ctx, db.Pool, search.Filters{Categories: []string{"design", "marketing"}})
	require.NoError(t, err)

	onlyDesign, err := SearchListings(ctx, db.Pool, search.Filters{Categories: []string{"design"}})
	require.NoError(t, err)
	onlyMarketing, err := SearchListings(ctx, db.Pool, search.Filters{Categories: []string{"marketing"}})
	require.NoError(t, err)

	assert.Equal(t, 2, both.Total)
	union := idsOf(onlyDesign.Items)
	for id := range idsOf(onlyMarketing.Items) {
		union[id] = true
	}
	assert.Equal(t, union, idsOf(both.Items))
}

func TestSearchListings_AndAcrossDimensions(t *testing.T) {
	db := openTestDB(t)
	co := seedCompany(t, db, "Acme")

	seedListing(t, db, Listing{Title: "Designer", CompanyID: co.ID, Category: "design", JobType: "full_time"})
	seedListing(t, db, Listing{Title: "Design Intern", CompanyID: co.ID, Category: "design", JobType: "internship"})

	ctx := context.Background()
	loose, err := SearchListings(ctx, db.Pool, search.Filters{Categories: []string{"design"}})
	require.NoError(t, err)
	tight, err := SearchListings(ctx, db.Pool, search.Filters{
		Categories: []string{"design"},
		JobTypes:   []string{"full_time"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, loose.Total)
	assert.Equal(t, 1, tight.Total)
	assert.LessOrEqual(t, tight.Total, loose.Total, "adding a constraint never grows the result set")
}

func TestSearchListings_SalaryFloorExcludesUnset(t *testing.T) {
	db := openTestDB(t)
	co := seedCompany(t, db, "Acme")

	lo, hi := 40000.0, 200000.0
	seedListing(t, db, Listing{Title: "Paid", CompanyID: co.ID, SalaryMin: &lo})
	seedListing(t, db, Listing{Title: "Unsaid", CompanyID: co.ID, SalaryMax: &hi}) // no floor set

	min := 30000.0
	page, err := SearchListings(context.Background(), db.Pool, search.Filters{MinSalary: &min})
	require.NoError(t, err)

	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Paid", page.Items[0].Title)
}

func TestSearchListings_QueryMatchesCompanyName(t *testing.T) {
	db := openTestDB(t)
	acme := seedCompany(t, db, "Acme Robotics")
	other := seedCompany(t, db, "Globex")

	seedListing(t, db, Listing{Title: "Engineer", CompanyID: acme.ID})
	seedListing(t, db, Listing{Title: "Engineer", CompanyID: other.ID})

	page, err := SearchListings(context.Background(), db.Pool, search.Filters{Query: "robotics"})
	require.NoError(t, err)

	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Acme Robotics", page.Items[0].CompanyName)
}

func TestSearchListings_RelevanceOrdering(t *testing.T) {
	db := openTestDB(t)
	co := seedCompany(t, db, "Acme")

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	seedListing(t, db, Listing{Title: "Designer", CompanyID: co.ID, Featured: true, PostedAt: base})
	seedListing(t, db, Listing{Title: "Product Designer", CompanyID: co.ID, Premium: true, PostedAt: base.Add(time.Hour)})
	seedListing(t, db, Listing{Title: "Designer II", CompanyID: co.ID, PostedAt: base.Add(2 * time.Hour)})

	page, err := SearchListings(context.Background(), db.Pool, search.Filters{
		Query: "design",
		Sort:  search.SortRelevance,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	assert.Equal(t, "Designer", page.Items[0].Title, "featured first")
	assert.Equal(t, "Product Designer", page.Items[1].Title, "then premium")
	assert.Equal(t, "Designer II", page.Items[2].Title)
}

func TestSearchListings_RelevanceWithoutQueryFallsBackToDate(t *testing.T) {
	db := openTestDB(t)
	co := seedCompany(t, db, "Acme")

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	seedListing(t, db, Listing{Title: "Old Featured", CompanyID: co.ID, Featured: true, PostedAt: base})
	seedListing(t, db, Listing{Title: "New Plain", CompanyID: co.ID, PostedAt: base.Add(time.Hour)})

	page, err := SearchListings(context.Background(), db.Pool, search.Filters{Sort: search.SortRelevance})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "New Plain", page.Items[0].Title)
}

func TestSearchListings_Pagination(t *testing.T) {
	db := openTestDB(t)
	co := seedCompany(t, db, "Acme")

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedListing(t, db, Listing{Title: "Job", CompanyID: co.ID, PostedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	ctx := context.Background()
	first, err := SearchListings(ctx, db.Pool, search.Filters{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, first.Total)
	assert.Equal(t, 3, first.TotalPages)
	assert.Len(t, first.Items, 2)

	last, err := SearchListings(ctx, db.Pool, search.Filters{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, last.Items, 1)

	past, err := SearchListings(ctx, db.Pool, search.Filters{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, past.Items)
	assert.Equal(t, 5, past.Total)
}

func TestSearchListings_LocationAndPremium(t *testing.T) {
	db := openTestDB(t)
	co := seedCompany(t, db, "Acme")

	seedListing(t, db, Listing{Title: "A", CompanyID: co.ID, Location: "Berlin, Germany", Premium: true})
	seedListing(t, db, Listing{Title: "B", CompanyID: co.ID, Location: "Lisbon, Portugal"})

	ctx := context.Background()
	byLoc, err := SearchListings(ctx, db.Pool, search.Filters{Location: "berlin"})
	require.NoError(t, err)
	assert.Equal(t, 1, byLoc.Total)

	premium, err := SearchListings(ctx, db.Pool, search.Filters{PremiumOnly: true})
	require.NoError(t, err)
	require.Equal(t, 1, premium.Total)
	assert.Equal(t, "A", premium.Items[0].Title)
}

func TestSearchCompanies(t *testing.T) {
	db := openTestDB(t)
	seedCompany(t, db, "Acme Robotics")
	seedCompany(t, db, "Globex")
	seedCompany(t, db, "Initech")

	ctx := context.Background()
	all, err := SearchCompanies(ctx, db.Pool, search.Filters{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	// name ASC
	assert.Equal(t, "Acme Robotics", all.Items[0].Name)

	matched, err := SearchCompanies(ctx, db.Pool, search.Filters{Query: "glo"})
	require.NoError(t, err)
	require.Equal(t, 1, matched.Total)
	assert.Equal(t, "Globex", matched.Items[0].Name)
}

func TestListingsPostedAfter(t *testing.T) {
	db := openTestDB(t)
	co := seedCompany(t, db, "Acme")

	now := time.Now().UTC()
	seedListing(t, db, Listing{Title: "Fresh", CompanyID: co.ID, PostedAt: now.Add(-1 * time.Hour)})
	seedListing(t, db, Listing{Title: "Stale", CompanyID: co.ID, PostedAt: now.Add(-48 * time.Hour)})

	recent, err := ListingsPostedAfter(context.Background(), db.Pool, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Fresh", recent[0].Title)
}
