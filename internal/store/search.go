package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"remotejobs-engine/internal/search"
)

type ListingPage struct {
	Items      []Listing
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

type CompanyPage struct {
	Items      []Company
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// SearchListings composes one filtered, paginated read from a Filters value.
// The page query and the matching count query share the same predicate set and
// run concurrently.
func SearchListings(ctx context.Context, db *sql.DB, f search.Filters) (ListingPage, error) {
	where, args := listingPredicates(f)

	order := "l.posted_at DESC"
	if f.Sort == search.SortRelevance && f.Query != "" {
		// relevance is an ordering privilege, not a text-similarity rank
		order = "l.featured DESC, l.premium DESC, l.posted_at DESC"
	}

	page := ListingPage{Page: f.Page, PageSize: f.PageSize}
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PageSize < 1 {
		page.PageSize = search.Jobs.DefaultPageSize
	}
	offset := (page.Page - 1) * page.PageSize

	g, gctx := errgroup.WithContext(ctx)

	pageArgs := append(append([]any{}, args...), page.PageSize, offset)

	g.Go(func() error {
		query := fmt.Sprintf(`%s %s ORDER BY %s LIMIT ? OFFSET ?;`, listingSelect, where, order)
		rows, err := db.QueryContext(gctx, query, pageArgs...)
		if err != nil {
			return fmt.Errorf("search listings: %w", err)
		}
		defer rows.Close()
		page.Items, err = scanListings(rows)
		return err
	})

	g.Go(func() error {
		query := `SELECT COUNT(*) FROM listings l JOIN companies c ON c.id = l.company_id ` + where + `;`
		if err := db.QueryRowContext(gctx, query, args...).Scan(&page.Total); err != nil {
			return fmt.Errorf("count listings: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return ListingPage{}, err
	}

	if page.Items == nil {
		page.Items = []Listing{}
	}
	page.TotalPages = (page.Total + page.PageSize - 1) / page.PageSize
	return page, nil
}

func listingPredicates(f search.Filters) (where string, args []any) {
	var conds []string

	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		conds = append(conds, `(lower(l.title) LIKE ? OR lower(l.description) LIKE ? OR lower(c.name) LIKE ?)`)
		args = append(args, like, like, like)
	}
	if len(f.Categories) > 0 {
		conds = append(conds, `l.category_slug IN (`+placeholders(len(f.Categories))+`)`)
		for _, c := range f.Categories {
			args = append(args, c)
		}
	}
	if len(f.JobTypes) > 0 {
		conds = append(conds, `l.job_type IN (`+placeholders(len(f.JobTypes))+`)`)
		for _, t := range f.JobTypes {
			args = append(args, t)
		}
	}
	if f.RemoteScope != "" {
		conds = append(conds, `l.remote_scope = ?`)
		args = append(args, f.RemoteScope)
	}
	if f.MinSalary != nil {
		// a listing with no salary floor never satisfies a threshold
		conds = append(conds, `(l.salary_min IS NOT NULL AND l.salary_min >= ?)`)
		args = append(args, *f.MinSalary)
	}
	if f.Location != "" {
		conds = append(conds, `lower(l.location) LIKE ?`)
		args = append(args, "%"+strings.ToLower(f.Location)+"%")
	}
	if f.PremiumOnly {
		conds = append(conds, `l.premium = 1`)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// SearchCompanies is the parallel company search. It shares the composer shape
// but keeps its own, much larger page-size ceiling.
func SearchCompanies(ctx context.Context, db *sql.DB, f search.Filters) (CompanyPage, error) {
	var conds []string
	var args []any
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		conds = append(conds, `(lower(name) LIKE ? OR lower(description) LIKE ?)`)
		args = append(args, like, like)
	}
	if f.PremiumOnly {
		conds = append(conds, `premium = 1`)
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	page := CompanyPage{Page: f.Page, PageSize: f.PageSize}
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PageSize < 1 {
		page.PageSize = search.Companies.DefaultPageSize
	}
	offset := (page.Page - 1) * page.PageSize

	g, gctx := errgroup.WithContext(ctx)

	pageArgs := append(append([]any{}, args...), page.PageSize, offset)

	g.Go(func() error {
		query := fmt.Sprintf(`
SELECT id, name, slug, description, website_url, premium
FROM companies %s
ORDER BY name ASC
LIMIT ? OFFSET ?;`, where)
		rows, err := db.QueryContext(gctx, query, pageArgs...)
		if err != nil {
			return fmt.Errorf("search companies: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var c Company
			var premium int
			if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.WebsiteURL, &premium); err != nil {
				return err
			}
			c.Premium = premium != 0
			page.Items = append(page.Items, c)
		}
		return rows.Err()
	})

	g.Go(func() error {
		query := `SELECT COUNT(*) FROM companies ` + where + `;`
		if err := db.QueryRowContext(gctx, query, args...).Scan(&page.Total); err != nil {
			return fmt.Errorf("count companies: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return CompanyPage{}, err
	}

	if page.Items == nil {
		page.Items = []Company{}
	}
	page.TotalPages = (page.Total + page.PageSize - 1) / page.PageSize
	return page, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
