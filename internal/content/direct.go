package content

import (
	"context"

	"github.com/atech/cms/internal/models"
	"github.com/atech/cms/internal/repository"
)

// Direct reads the store in-process.
type Direct struct {
	store *repository.Store
}

func NewDirect(store *repository.Store) *Direct {
	return &Direct{store: store}
}

func (d *Direct) FetchHomePage(ctx context.Context) *models.HomePage {
	v := d.store.HomePage.Get(ctx)
	return &v
}

func (d *Direct) FetchAboutPage(ctx context.Context) *models.AboutPage {
	v := d.store.AboutPage.Get(ctx)
	return &v
}

func (d *Direct) FetchGlobalSettings(ctx context.Context) *models.GlobalSettings {
	v := d.store.GlobalSettings.Get(ctx)
	return &v
}

func (d *Direct) FetchServices(ctx context.Context) []models.Service {
	return d.store.Services.List(ctx)
}

func (d *Direct) FetchService(ctx context.Context, slug string) *models.Service {
	v, _ := d.store.Services.GetBySlug(ctx, slug)
	return v
}

func (d *Direct) FetchProjects(ctx context.Context, f ProjectFilter) []models.Project {
	return FilterProjects(d.store.Projects.List(ctx), f)
}

func (d *Direct) FetchProject(ctx context.Context, slug string) *models.Project {
	v, _ := d.store.Projects.GetBySlug(ctx, slug)
	return v
}

func (d *Direct) FetchTestimonials(ctx context.Context, limit int) []models.Testimonial {
	return LimitTestimonials(d.store.Testimonials.List(ctx), limit)
}

func (d *Direct) FetchTeamMembers(ctx context.Context) []models.TeamMember {
	return d.store.TeamMembers.List(ctx)
}

func (d *Direct) FetchBlogPosts(ctx context.Context, f BlogFilter) []models.BlogPost {
	return FilterBlogPosts(d.store.BlogPosts.List(ctx), f)
}

func (d *Direct) FetchBlogPost(ctx context.Context, slug string) *models.BlogPost {
	v, _ := d.store.BlogPosts.GetBySlug(ctx, slug)
	return v
}
