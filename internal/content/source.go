// Package content is the read side used by page rendering and exports. A
// Source either reads the store in-process or calls the public content API
// of a running server; both return the same results for the same data.
package content

import (
	"context"

	"github.com/atech/cms/internal/models"
	"github.com/atech/cms/internal/repository"
)

// Source never fails: errors are logged and surface as nil or empty lists.
type Source interface {
	FetchHomePage(ctx context.Context) *models.HomePage
	FetchAboutPage(ctx context.Context) *models.AboutPage
	FetchServices(ctx context.Context) []models.Service
	FetchService(ctx context.Context, slug string) *models.Service
	FetchProjects(ctx context.Context, f ProjectFilter) []models.Project
	FetchProject(ctx context.Context, slug string) *models.Project
	FetchTestimonials(ctx context.Context, limit int) []models.Testimonial
	FetchTeamMembers(ctx context.Context) []models.TeamMember
	FetchBlogPosts(ctx context.Context, f BlogFilter) []models.BlogPost
	FetchBlogPost(ctx context.Context, slug string) *models.BlogPost
	FetchGlobalSettings(ctx context.Context) *models.GlobalSettings
}

type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeDirect Mode = "direct"
	ModeHTTP   Mode = "http"
)

// DefaultSiteURL is used by the HTTP source when no site URL is configured.
const DefaultSiteURL = "http://localhost:3000"

// ResolveMode turns ModeAuto into a concrete mode. Builds and hosted
// deployments without a public URL have no server to call, so they read the
// store directly.
func ResolveMode(mode Mode, buildPhase, hosted bool, siteURL string) Mode {
	if mode != ModeAuto && mode != "" {
		return mode
	}
	if buildPhase || (hosted && siteURL == "") {
		return ModeDirect
	}
	return ModeHTTP
}

// New returns the Source for a resolved mode. When the chosen side is
// missing the other one is used; at least one must be non-nil.
func New(mode Mode, store *repository.Store, remote *Remote) Source {
	switch {
	case mode == ModeHTTP && remote != nil:
		return remote
	case store != nil:
		return NewDirect(store)
	default:
		return remote
	}
}
