package content

import (
	"slices"

	"github.com/atech/cms/internal/models"
)

// ProjectFilter narrows FetchProjects. Slug takes precedence over the other
// fields; a Limit of zero or less means no limit.
type ProjectFilter struct {
	Slug     string
	Featured bool
	Limit    int
}

// BlogFilter narrows FetchBlogPosts. Slug takes precedence over the other
// fields.
type BlogFilter struct {
	Slug     string
	Category string
	Limit    int
}

func FilterProjects(in []models.Project, f ProjectFilter) []models.Project {
	if f.Slug != "" {
		for _, p := range in {
			if p.Slug == f.Slug {
				return []models.Project{p}
			}
		}
		return []models.Project{}
	}
	out := make([]models.Project, 0, len(in))
	for _, p := range in {
		if f.Featured && !bool(p.Featured) {
			continue
		}
		out = append(out, p)
	}
	return limit(out, f.Limit)
}

// SortBlogPosts orders posts newest first by publication date, falling back
// to and then breaking ties on the creation date. The input is not modified.
func SortBlogPosts(in []models.BlogPost) []models.BlogPost {
	out := slices.Clone(in)
	if out == nil {
		out = []models.BlogPost{}
	}
	slices.SortStableFunc(out, func(a, b models.BlogPost) int {
		if c := b.SortKey().Compare(a.SortKey()); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})
	return out
}

func FilterBlogPosts(in []models.BlogPost, f BlogFilter) []models.BlogPost {
	sorted := SortBlogPosts(in)
	if f.Slug != "" {
		for _, p := range sorted {
			if p.Slug == f.Slug {
				return []models.BlogPost{p}
			}
		}
		return []models.BlogPost{}
	}
	out := sorted[:0]
	for _, p := range sorted {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	return limit(out, f.Limit)
}

func LimitTestimonials(in []models.Testimonial, n int) []models.Testimonial {
	if in == nil {
		return []models.Testimonial{}
	}
	return limit(in, n)
}

func limit[T any](in []T, n int) []T {
	if n > 0 && len(in) > n {
		return in[:n]
	}
	return in
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
