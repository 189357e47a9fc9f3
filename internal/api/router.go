package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/atech/cms/internal/api/handlers"
	mw "github.com/atech/cms/internal/api/middleware"
	"github.com/atech/cms/internal/api/validators"
	"github.com/atech/cms/internal/content"
	"github.com/atech/cms/internal/media"
	"github.com/atech/cms/internal/models"
	"github.com/atech/cms/internal/repository"
)

type Dependencies struct {
	Store    *repository.Store
	Source   content.Source
	Uploader media.Uploader
	Auth     *handlers.AuthHandler

	HMACSecret []byte
	// RequireToken puts the admin routes other than login behind Auth.
	RequireToken bool

	CORSOrigins []string
	RateRPS     float64
	RateBurst   int
	// TrustedProxyHops is how many reverse proxies set X-Forwarded-For.
	TrustedProxyHops int
	// UploadDir is served under /uploads when set.
	UploadDir string
}

// NewRouter builds the HTTP handler. ctx bounds background work such as
// the rate limiter's sweeper.
func NewRouter(ctx context.Context, dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS(dep.CORSOrigins))
	if dep.RateRPS > 0 {
		r.Use(mw.RateLimit(ctx, dep.RateRPS, dep.RateBurst, dep.TrustedProxyHops))
	}
	r.Use(chimid.Compress(5))

	hh := handlers.NewHealthHandler(dep.Store.Backend)
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	if dep.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(dep.UploadDir))))
	}

	ch := handlers.NewContentHandler(dep.Source)
	r.Route("/api/content", func(cr chi.Router) {
		cr.Get("/home-page", ch.HomePage)
		cr.Get("/about-page", ch.AboutPage)
		cr.Get("/global-settings", ch.GlobalSettings)
		cr.Get("/services", ch.Services)
		cr.Get("/projects", ch.Projects)
		cr.Get("/blog-posts", ch.BlogPosts)
		cr.Get("/team-members", ch.TeamMembers)
		cr.Get("/testimonials", ch.Testimonials)
	})

	v := validators.New()
	s := dep.Store
	ah := handlers.NewAdminHandler(s, dep.Uploader)

	r.Route("/api/admin", func(ar chi.Router) {
		if dep.Auth != nil {
			ar.Post("/login", dep.Auth.Login)
		}

		ar.Group(func(protected chi.Router) {
			if dep.RequireToken {
				protected.Use(mw.Auth(dep.HMACSecret))
			}

			protected.Route("/projects", handlers.NewCollectionHandler[models.Project]("Project", s.Projects, v, handlers.FilterProjectList).Routes)
			protected.Route("/services", handlers.NewCollectionHandler[models.Service]("Service", s.Services, v, nil).Routes)
			protected.Route("/blog-posts", handlers.NewCollectionHandler[models.BlogPost]("Blog post", s.BlogPosts, v, nil).Routes)
			protected.Route("/testimonials", handlers.NewCollectionHandler[models.Testimonial]("Testimonial", s.Testimonials, v, nil).Routes)
			protected.Route("/team-members", handlers.NewCollectionHandler[models.TeamMember]("Team member", s.TeamMembers, v, nil).Routes)

			protected.Route("/about", handlers.NewSingletonHandler(s.AboutPage).Routes)
			protected.Route("/home-page", handlers.NewSingletonHandler(s.HomePage).Routes)
			protected.Route("/global-settings", handlers.NewSingletonHandler(s.GlobalSettings).Routes)

			protected.Get("/stats", ah.Stats)
			protected.Post("/upload", ah.Upload)
		})
	})

	return r
}
