package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPageSize(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		dim  Dimension
		want int
	}{
		{"empty falls back", "", Jobs, 20},
		{"zero falls back", "0", Jobs, 20},
		{"negative falls back", "-5", Jobs, 20},
		{"garbage falls back", "abc", Jobs, 20},
		{"in range kept", "35", Jobs, 35},
		{"above jobs ceiling clamped", "200", Jobs, 50},
		{"companies ceiling is larger", "200", Companies, 200},
		{"above companies ceiling clamped", "5000", Companies, 1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClampPageSize(tc.raw, tc.dim))
		})
	}
}

func TestParse_MultiValueDimensions(t *testing.T) {
	q := url.Values{
		"category": {"design", "marketing"},
		"job_type": {"full_time,contract"}, // legacy comma-joined form
	}
	f := Parse(q, Jobs)

	assert.Equal(t, []string{"design", "marketing"}, f.Categories)
	assert.Equal(t, []string{"full_time", "contract"}, f.JobTypes)
}

func TestParse_RepeatedJobTypes(t *testing.T) {
	q := url.Values{"job_type": {"full_time", "contract"}}
	f := Parse(q, Jobs)
	assert.Equal(t, []string{"full_time", "contract"}, f.JobTypes)
}

func TestParse_NumericFallbacks(t *testing.T) {
	q := url.Values{
		"page":       {"banana"},
		"limit":      {"-1"},
		"min_salary": {"lots"},
	}
	f := Parse(q, Jobs)

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, Jobs.DefaultPageSize, f.PageSize)
	assert.Nil(t, f.MinSalary)
}

func TestParse_Flags(t *testing.T) {
	q := url.Values{
		"q":            {"  backend  "},
		"premium":      {"true"},
		"sort":         {"relevance"},
		"remote_scope": {"europe"},
		"min_salary":   {"60000"},
	}
	f := Parse(q, Jobs)

	assert.Equal(t, "backend", f.Query)
	assert.True(t, f.PremiumOnly)
	assert.Equal(t, SortRelevance, f.Sort)
	assert.Equal(t, "europe", f.RemoteScope)
	if assert.NotNil(t, f.MinSalary) {
		assert.Equal(t, 60000.0, *f.MinSalary)
	}
}

func TestParse_UnknownSortFallsBackToDate(t *testing.T) {
	f := Parse(url.Values{"sort": {"magic"}}, Jobs)
	assert.Equal(t, SortDate, f.Sort)
}

func TestFiltersIsEmpty(t *testing.T) {
	assert.True(t, Filters{Sort: SortRelevance, Page: 3, PageSize: 10, Optimised: true}.IsEmpty())

	min := 1000.0
	nonEmpty := []Filters{
		{Query: "go"},
		{Categories: []string{"design"}},
		{JobTypes: []string{"contract"}},
		{RemoteScope: "asia"},
		{MinSalary: &min},
		{Location: "Berlin"},
		{PremiumOnly: true},
	}
	for _, f := range nonEmpty {
		assert.False(t, f.IsEmpty())
	}
}
