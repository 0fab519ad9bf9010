// Package search holds the filter vocabulary shared by interactive search,
// the optimise translator and the alert digest scan.
package search

import "strings"

// Listing enumerations. These are the machine slugs stored in the listings
// table; the label tables below map human-readable onboarding answers onto them.
const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeFreelance  = "freelance"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
)

const (
	ScopeWorldwide    = "worldwide"
	ScopeEurope       = "europe"
	ScopeNorthAmerica = "north_america"
	ScopeLatam        = "latam"
	ScopeAsia         = "asia"
)

var categoryByLabel = map[string]string{
	"software development":    "software-development",
	"design":                  "design",
	"marketing":               "marketing",
	"sales":                   "sales",
	"product":                 "product",
	"data":                    "data",
	"devops / infrastructure": "devops",
	"customer support":        "customer-support",
	"finance / legal":         "finance-legal",
	"human resources":         "human-resources",
	"writing":                 "writing",
	"management / operations": "management-operations",
}

var jobTypeByLabel = map[string]string{
	"full-time":  JobTypeFullTime,
	"full time":  JobTypeFullTime,
	"part-time":  JobTypePartTime,
	"part time":  JobTypePartTime,
	"freelance":  JobTypeFreelance,
	"contract":   JobTypeContract,
	"internship": JobTypeInternship,
}

var scopeByLabel = map[string]string{
	"worldwide":     ScopeWorldwide,
	"anywhere":      ScopeWorldwide,
	"europe":        ScopeEurope,
	"north america": ScopeNorthAmerica,
	"latin america": ScopeLatam,
	"latam":         ScopeLatam,
	"asia":          ScopeAsia,
}

// salaryFloorByBand maps an onboarding salary band to the lower bound used as
// a min_salary threshold. Sentinel answers ("Flexible / Open", "Prefer not to
// say") are deliberately missing so they translate to no constraint.
var salaryFloorByBand = map[string]int{
	"$30k - $50k":   30000,
	"$50k - $80k":   50000,
	"$80k - $120k":  80000,
	"$120k - $160k": 120000,
	"$160k+":        160000,
}

func normLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CategorySlug maps a category label to its slug. Unknown labels report ok=false
// and are treated as "no constraint" by callers, never as an error.
func CategorySlug(label string) (string, bool) {
	slug, ok := categoryByLabel[normLabel(label)]
	return slug, ok
}

func JobTypeSlug(label string) (string, bool) {
	slug, ok := jobTypeByLabel[normLabel(label)]
	return slug, ok
}

func RemoteScopeSlug(label string) (string, bool) {
	slug, ok := scopeByLabel[normLabel(label)]
	return slug, ok
}

// SalaryFloor maps a salary band answer to its integer lower bound.
func SalaryFloor(band string) (int, bool) {
	floor, ok := salaryFloorByBand[strings.TrimSpace(band)]
	return floor, ok
}
