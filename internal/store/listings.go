package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Listing is a job posting. The engine only ever reads these after creation.
type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CompanyID   string    `json:"companyId"`
	CompanyName string    `json:"companyName"`
	Tags        []string  `json:"tags"`
	Category    string    `json:"category"`
	JobType     string    `json:"jobType"`
	RemoteScope string    `json:"remoteScope"`
	SalaryMin   *float64  `json:"salaryMin,omitempty"`
	SalaryMax   *float64  `json:"salaryMax,omitempty"`
	Location    string    `json:"location"`
	Featured    bool      `json:"featured"`
	Premium     bool      `json:"premium"`
	PostedAt    time.Time `json:"postedAt"`
}

// NewListing assigns the identifier and posted timestamp before insert.
// IDs always come from this factory, never from the database.
func NewListing(l Listing) Listing {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.PostedAt.IsZero() {
		l.PostedAt = time.Now().UTC()
	}
	if l.Tags == nil {
		l.Tags = []string{}
	}
	return l
}

func InsertListing(ctx context.Context, db *sql.DB, l Listing) error {
	if l.ID == "" {
		return fmt.Errorf("insert listing: missing id (use NewListing)")
	}
	tagsB, _ := json.Marshal(l.Tags)
	_, err := db.ExecContext(ctx, `
INSERT INTO listings (id, title, description, company_id, tags, category_slug, job_type,
  remote_scope, salary_min, salary_max, location, featured, premium, posted_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		l.ID, l.Title, l.Description, l.CompanyID, string(tagsB), l.Category, l.JobType,
		l.RemoteScope, nullFloat(l.SalaryMin), nullFloat(l.SalaryMax), l.Location,
		boolInt(l.Featured), boolInt(l.Premium), l.PostedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

// ListingsPostedAfter returns listings with posted_at strictly after since,
// newest first. This is the digest scan's read.
func ListingsPostedAfter(ctx context.Context, db *sql.DB, since time.Time) ([]Listing, error) {
	rows, err := db.QueryContext(ctx, listingSelect+`
WHERE l.posted_at > ?
ORDER BY l.posted_at DESC;`, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listings posted after: %w", err)
	}
	defer rows.Close()
	return scanListings(rows)
}

func GetListing(ctx context.Context, db *sql.DB, id string) (Listing, error) {
	rows, err := db.QueryContext(ctx, listingSelect+` WHERE l.id = ?;`, id)
	if err != nil {
		return Listing{}, err
	}
	defer rows.Close()
	out, err := scanListings(rows)
	if err != nil {
		return Listing{}, err
	}
	if len(out) == 0 {
		return Listing{}, sql.ErrNoRows
	}
	return out[0], nil
}

const listingSelect = `
SELECT l.id, l.title, l.description, l.company_id, c.name, l.tags, l.category_slug,
  l.job_type, l.remote_scope, l.salary_min, l.salary_max, l.location,
  l.featured, l.premium, l.posted_at
FROM listings l
JOIN companies c ON c.id = l.company_id`

func scanListings(rows *sql.Rows) ([]Listing, error) {
	var out []Listing
	for rows.Next() {
		var l Listing
		var tagsJSON, postedStr string
		var salMin, salMax sql.NullFloat64
		var featured, premium int
		if err := rows.Scan(
			&l.ID, &l.Title, &l.Description, &l.CompanyID, &l.CompanyName, &tagsJSON,
			&l.Category, &l.JobType, &l.RemoteScope, &salMin, &salMax, &l.Location,
			&featured, &premium, &postedStr,
		); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(tagsJSON), &l.Tags)
		if salMin.Valid {
			v := salMin.Float64
			l.SalaryMin = &v
		}
		if salMax.Valid {
			v := salMax.Float64
			l.SalaryMax = &v
		}
		l.Featured = featured != 0
		l.Premium = premium != 0
		l.PostedAt, _ = time.Parse(time.RFC3339, postedStr)
		out = append(out, l)
	}
	return out, rows.Err()
}

func nullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
