package optimise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotejobs-engine/internal/store"
)

func TestTranslate_FullRecord(t *testing.T) {
	rec := store.PreferenceRecord{
		AnswersByQuestion: map[int][]string{
			QuestionRole:        {"Backend Engineer"},
			QuestionSkills:      {"Go", "Postgres"},
			QuestionJobTypes:    {"Full-time", "Contract"},
			QuestionRemoteScope: {"Europe", "Worldwide"},
			QuestionSalary:      {"$50k - $80k"},
			QuestionLocation:    {"Berlin"},
		},
		SelectedCategory: "Software Development",
	}

	f := Translate(rec)

	assert.True(t, f.Optimised)
	assert.Equal(t, []string{"software-development"}, f.Categories)
	assert.Equal(t, "Backend Engineer Go Postgres", f.Query)
	assert.Equal(t, []string{"full_time", "contract"}, f.JobTypes)
	// remote scope is single-valued: only the first answer counts
	assert.Equal(t, "europe", f.RemoteScope)
	assert.Equal(t, "Berlin", f.Location)
	require.NotNil(t, f.MinSalary)
	assert.Equal(t, 50000.0, *f.MinSalary)
}

func TestTranslate_Idempotent(t *testing.T) {
	rec := store.PreferenceRecord{
		AnswersByQuestion: map[int][]string{
			QuestionRole:     {"Designer"},
			QuestionJobTypes: {"Freelance"},
		},
	}
	first := Translate(rec)
	second := Translate(rec)
	assert.Equal(t, first, second)
}

func TestTranslate_UnmappedLabelsAreDropped(t *testing.T) {
	rec := store.PreferenceRecord{
		AnswersByQuestion: map[int][]string{
			QuestionCategory: {"Quantum Baking"},
		},
	}
	f := Translate(rec)

	assert.True(t, f.Optimised)
	assert.True(t, f.IsEmpty(), "unmapped category must not become a constraint")
}

func TestTranslate_CategoryFallsBackToAnswer(t *testing.T) {
	rec := store.PreferenceRecord{
		AnswersByQuestion: map[int][]string{
			QuestionCategory: {"Marketing"},
		},
	}
	f := Translate(rec)
	assert.Equal(t, []string{"marketing"}, f.Categories)
}

func TestTranslate_SelectedCategoryWins(t *testing.T) {
	rec := store.PreferenceRecord{
		AnswersByQuestion: map[int][]string{
			QuestionCategory: {"Marketing"},
		},
		SelectedCategory: "Design",
	}
	f := Translate(rec)
	assert.Equal(t, []string{"design"}, f.Categories)
}

func TestTranslate_PartiallyMappedJobTypes(t *testing.T) {
	rec := store.PreferenceRecord{
		AnswersByQuestion: map[int][]string{
			QuestionJobTypes: {"Internship", "Gig Work", "Part-time"},
		},
	}
	f := Translate(rec)
	assert.Equal(t, []string{"internship", "part_time"}, f.JobTypes)
}

func TestTranslate_Sentinels(t *testing.T) {
	rec := store.PreferenceRecord{
		AnswersByQuestion: map[int][]string{
			QuestionLocation: {"Other / Not Listed"},
			QuestionSalary:   {"Prefer not to say"},
		},
	}
	f := Translate(rec)

	assert.Empty(t, f.Location)
	assert.Nil(t, f.MinSalary)
}

func TestTranslate_EmptyRecord(t *testing.T) {
	f := Translate(store.PreferenceRecord{})
	assert.True(t, f.Optimised)
	assert.True(t, f.IsEmpty())
}

func TestTranslate_QueryTrimsBlankAnswers(t *testing.T) {
	rec := store.PreferenceRecord{
		AnswersByQuestion: map[int][]string{
			QuestionRole:   {"  "},
			QuestionSkills: {""},
		},
	}
	f := Translate(rec)
	assert.Empty(t, f.Query)
}
