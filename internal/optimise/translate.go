// Package optimise turns a user's stored onboarding answers into search
// filters. Translation is lossy-safe: anything it cannot map it drops.
package optimise

import (
	"strings"

	"remotejobs-engine/internal/search"
	"remotejobs-engine/internal/store"
)

// Ordinal question ids as stored in the preference record.
const (
	QuestionCategory    = 1
	QuestionRole        = 2
	QuestionSkills      = 3
	QuestionJobTypes    = 4
	QuestionRemoteScope = 5
	QuestionSalary      = 6
	QuestionLocation    = 7
)

const locationSentinel = "Other / Not Listed"

// Translate maps a preference record onto the filter vocabulary. It is a pure
// function: no I/O, no hidden state, same record in, same filters out.
// Unmapped labels become "no constraint", never an error.
func Translate(rec store.PreferenceRecord) search.Filters {
	f := search.Filters{
		Optimised: true,
		Sort:      search.SortDate,
		Page:      1,
		PageSize:  search.Jobs.DefaultPageSize,
	}

	// Category: explicit selection wins, else the first category answer.
	label := strings.TrimSpace(rec.SelectedCategory)
	if label == "" {
		label = firstAnswer(rec, QuestionCategory)
	}
	if slug, ok := search.CategorySlug(label); ok {
		f.Categories = []string{slug}
	}

	// Free-text query: role + skills answers, space-joined.
	var parts []string
	for _, q := range []int{QuestionRole, QuestionSkills} {
		for _, a := range rec.AnswersByQuestion[q] {
			if a = strings.TrimSpace(a); a != "" {
				parts = append(parts, a)
			}
		}
	}
	f.Query = strings.Join(parts, " ")

	// Job types: every mappable answer, union semantics.
	for _, a := range rec.AnswersByQuestion[QuestionJobTypes] {
		if slug, ok := search.JobTypeSlug(a); ok {
			f.JobTypes = append(f.JobTypes, slug)
		}
	}

	// Remote scope is single-valued downstream; only the first answer counts
	// even though onboarding allows multi-select here.
	if slug, ok := search.RemoteScopeSlug(firstAnswer(rec, QuestionRemoteScope)); ok {
		f.RemoteScope = slug
	}

	if loc := firstAnswer(rec, QuestionLocation); loc != "" && loc != locationSentinel {
		f.Location = loc
	}

	if floor, ok := search.SalaryFloor(firstAnswer(rec, QuestionSalary)); ok {
		v := float64(floor)
		f.MinSalary = &v
	}

	return f
}

func firstAnswer(rec store.PreferenceRecord, question int) string {
	for _, a := range rec.AnswersByQuestion[question] {
		if a = strings.TrimSpace(a); a != "" {
			return a
		}
	}
	return ""
}
