package models

import "time"

// BlogPost is an article. Content is HTML. Author is a snapshot of a team
// member, not a foreign key.
type BlogPost struct {
	Meta
	Title         string      `json:"title" validate:"required"`
	Slug          string      `json:"slug" validate:"required"`
	Excerpt       string      `json:"excerpt"`
	Content       string      `json:"content"`
	PublishedAt   Timestamp   `json:"publishedAt"`
	FeaturedImage Media       `json:"featuredImage,omitempty"`
	Category      string      `json:"category,omitempty"`
	Tags          StringList  `json:"tags,omitempty"`
	Author        *TeamMember `json:"author,omitempty" validate:"-"`
}

func (p *BlogPost) GetSlug() string { return p.Slug }

// Stamp also defaults the publication date to the creation time.
func (p *BlogPost) Stamp(now time.Time, created bool) {
	p.Meta.Stamp(now, created)
	if created && p.PublishedAt.IsZero() {
		p.PublishedAt = p.CreatedAt
	}
}

// SortKey is the publication date, falling back to the creation date.
func (p *BlogPost) SortKey() time.Time {
	if !p.PublishedAt.IsZero() {
		return p.PublishedAt.Time
	}
	return p.CreatedAt.Time
}
