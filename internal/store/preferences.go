package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PreferenceRecord is the stored onboarding payload, keyed by ordinal
// question id. It is written wholesale: saving replaces the entire record.
type PreferenceRecord struct {
	AnswersByQuestion map[int][]string `json:"answersByQuestionId"`
	SelectedCategory  string           `json:"selectedCategory,omitempty"`
}

// SavePreferences overwrites the user's record (replace-on-write, no merge).
func SavePreferences(ctx context.Context, db *sql.DB, userID string, rec PreferenceRecord) error {
	if rec.AnswersByQuestion == nil {
		rec.AnswersByQuestion = map[int][]string{}
	}
	answersB, err := json.Marshal(rec.AnswersByQuestion)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	_, err = db.ExecContext(ctx, `
INSERT INTO preferences (user_id, answers, selected_category, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
  answers = excluded.answers,
  selected_category = excluded.selected_category,
  updated_at = excluded.updated_at;`,
		userID, string(answersB), rec.SelectedCategory, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// GetPreferences returns the stored record. ok=false means the user has not
// completed onboarding.
func GetPreferences(ctx context.Context, db *sql.DB, userID string) (PreferenceRecord, bool, error) {
	var answersJSON string
	var rec PreferenceRecord
	err := db.QueryRowContext(ctx, `
SELECT answers, selected_category
FROM preferences
WHERE user_id = ?;`, userID).Scan(&answersJSON, &rec.SelectedCategory)
	if errors.Is(err, sql.ErrNoRows) {
		return PreferenceRecord{}, false, nil
	}
	if err != nil {
		return PreferenceRecord{}, false, fmt.Errorf("get preferences: %w", err)
	}
	rec.AnswersByQuestion = map[int][]string{}
	_ = json.Unmarshal([]byte(answersJSON), &rec.AnswersByQuestion)
	return rec, true, nil
}
