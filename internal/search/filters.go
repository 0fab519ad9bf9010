package search

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	SortDate      = "date"
	SortRelevance = "relevance"
)

// Dimension carries the pagination bounds for one searchable collection.
// Jobs and companies deliberately differ: company pages are cheap and the
// frontend pulls them in large chunks.
type Dimension struct {
	DefaultPageSize int
	MaxPageSize     int
}

var (
	Jobs      = Dimension{DefaultPageSize: 20, MaxPageSize: 50}
	Companies = Dimension{DefaultPageSize: 50, MaxPageSize: 1000}
)

// Filters is the normalized, in-memory form of all active search constraints.
// An empty Filters matches every listing; values within one dimension are
// OR-ed, different dimensions are AND-ed.
type Filters struct {
	Query       string
	Categories  []string
	JobTypes    []string
	RemoteScope string
	MinSalary   *float64
	Location    string
	PremiumOnly bool
	Sort        string
	Page        int
	PageSize    int

	// Optimised marks a Filters produced by the preference translator.
	Optimised bool
}

// IsEmpty reports whether no constraint is set. Sort, pagination and the
// Optimised marker are not constraints.
func (f Filters) IsEmpty() bool {
	return f.Query == "" &&
		len(f.Categories) == 0 &&
		len(f.JobTypes) == 0 &&
		f.RemoteScope == "" &&
		f.MinSalary == nil &&
		f.Location == "" &&
		!f.PremiumOnly
}

// Parse builds Filters from a request query string. Garbage numeric input
// falls back to defaults instead of erroring.
func Parse(q url.Values, dim Dimension) Filters {
	f := Filters{
		Query:       strings.TrimSpace(q.Get("q")),
		RemoteScope: strings.TrimSpace(q.Get("remote_scope")),
		Location:    strings.TrimSpace(q.Get("location")),
		PremiumOnly: q.Get("premium") == "true",
		Sort:        SortDate,
	}
	if q.Get("sort") == SortRelevance {
		f.Sort = SortRelevance
	}

	f.Categories = splitMulti(q["category"])
	f.JobTypes = splitMulti(q["job_type"])

	if raw := strings.TrimSpace(q.Get("min_salary")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			f.MinSalary = &v
		}
	}

	f.Page = positiveIntOr(q.Get("page"), 1)
	f.PageSize = ClampPageSize(q.Get("limit"), dim)
	return f
}

// splitMulti accepts repeated params and the legacy single comma-joined form.
func splitMulti(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// ClampPageSize parses a raw limit and clamps it to the dimension's bounds.
// Unparsable or non-positive input falls back to the dimension default.
func ClampPageSize(raw string, dim Dimension) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return dim.DefaultPageSize
	}
	if n > dim.MaxPageSize {
		return dim.MaxPageSize
	}
	return n
}

func positiveIntOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}
