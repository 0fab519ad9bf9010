package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	WebsiteURL  string `json:"websiteUrl"`
	Premium     bool   `json:"premium"`
}

func NewCompany(c Company) Company {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Slug == "" {
		c.Slug = slugify(c.Name)
	}
	return c
}

func InsertCompany(ctx context.Context, db *sql.DB, c Company) error {
	if c.ID == "" {
		return fmt.Errorf("insert company: missing id (use NewCompany)")
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO companies (id, name, slug, description, website_url, premium)
VALUES (?, ?, ?, ?, ?, ?);`,
		c.ID, c.Name, c.Slug, c.Description, c.WebsiteURL, boolInt(c.Premium),
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
