package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Subscription is a persisted keyword alert owned by one email address.
type Subscription struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Keyword   string    `json:"keyword"`
	Frequency string    `json:"frequency"` // daily | weekly
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewSubscription(s Subscription) Subscription {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Frequency == "" {
		s.Frequency = "daily"
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return s
}

func InsertSubscription(ctx context.Context, db *sql.DB, s Subscription) error {
	if s.ID == "" {
		return fmt.Errorf("insert subscription: missing id (use NewSubscription)")
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO subscriptions (id, email, keyword, frequency, is_active, created_at)
VALUES (?, ?, ?, ?, ?, ?);`,
		s.ID, s.Email, s.Keyword, s.Frequency, boolInt(s.IsActive),
		s.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// ActiveSubscriptions loads every subscription with is_active set. The
// frequency column is returned but does not gate which rows come back.
func ActiveSubscriptions(ctx context.Context, db *sql.DB) ([]Subscription, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, email, keyword, frequency, is_active, created_at
FROM subscriptions
WHERE is_active = 1
ORDER BY created_at ASC;`)
	if err != nil {
		return nil, fmt.Errorf("active subscriptions: %w", err)
	}
	defer rows.Close()

	var out []Subscription
	for rows.Next() {
		var s Subscription
		var active int
		var createdStr string
		if err := rows.Scan(&s.ID, &s.Email, &s.Keyword, &s.Frequency, &active, &createdStr); err != nil {
			return nil, err
		}
		s.IsActive = active != 0
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		out = append(out, s)
	}
	return out, rows.Err()
}
