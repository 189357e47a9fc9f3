package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/atech/cms/internal/models"
	"github.com/atech/cms/pkg/database"
	"github.com/atech/cms/pkg/logger"
)

// Document keys, shared by the file and KV strategies.
const (
	KeyProjects       = "projects"
	KeyServices       = "services"
	KeyTestimonials   = "testimonials"
	KeyTeamMembers    = "team-members"
	KeyBlogPosts      = "blog-posts"
	KeyHomePage       = "home-page"
	KeyAboutPage      = "about-page"
	KeyGlobalSettings = "global-settings"
)

// Store is the storage adapter: every collection and singleton behind one
// backend chosen at Open.
type Store struct {
	Backend Backend
	// ReadOnly refuses every write. ProjectsReadOnly refuses project
	// writes and is implied by ReadOnly.
	ReadOnly         bool
	ProjectsReadOnly bool

	Projects     *Repo[models.Project]
	Services     *Repo[models.Service]
	Testimonials *Repo[models.Testimonial]
	TeamMembers  *Repo[models.TeamMember]
	BlogPosts    *Repo[models.BlogPost]

	HomePage       *Single[models.HomePage]
	AboutPage      *Single[models.AboutPage]
	GlobalSettings *Single[models.GlobalSettings]

	close func() error
}

// Stats counts the records of every collection.
type Stats struct {
	Projects     int `json:"projects"`
	Services     int `json:"services"`
	BlogPosts    int `json:"blogPosts"`
	Testimonials int `json:"testimonials"`
	TeamMembers  int `json:"teamMembers"`
}

// Open connects the backend chosen by SelectBackend.
func Open(ctx context.Context, opts Options) (*Store, error) {
	backend := SelectBackend(opts)
	var (
		s   *Store
		err error
	)
	switch backend {
	case BackendSQL:
		var db *gorm.DB
		db, err = database.OpenPostgres(ctx, opts.DatabaseURL, opts.SQLDebug)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		s = NewSQLStore(db)
	case BackendKV:
		rdb, kvErr := database.OpenRedis(ctx, opts.KVURL, opts.KVToken)
		if kvErr != nil {
			return nil, fmt.Errorf("open kv: %w", kvErr)
		}
		s = newBlobStore(BackendKV, newKVBlobs(rdb, opts.KVPrefix))
	default:
		var fb *fileBlobs
		fb, err = newFileBlobs(opts.DataDir)
		if err != nil {
			return nil, err
		}
		s = newBlobStore(BackendFile, fb)
	}
	switch {
	case ReadOnly(opts):
		s.readOnly()
	case ProjectsReadOnly(opts):
		s.projectsReadOnly()
	}
	logger.L().Info("content store ready",
		zap.String("backend", string(backend)),
		zap.Bool("read_only", s.ReadOnly),
		zap.Bool("projects_read_only", s.ProjectsReadOnly),
	)
	return s, nil
}

func newBlobStore(backend Backend, blobs blobStore) *Store {
	return &Store{
		Backend:        backend,
		Projects:       newRepo[models.Project](KeyProjects, newBlobCollection[models.Project](blobs, KeyProjects)),
		Services:       newRepo[models.Service](KeyServices, newBlobCollection[models.Service](blobs, KeyServices)),
		Testimonials:   newRepo[models.Testimonial](KeyTestimonials, newBlobCollection[models.Testimonial](blobs, KeyTestimonials)),
		TeamMembers:    newRepo[models.TeamMember](KeyTeamMembers, newBlobCollection[models.TeamMember](blobs, KeyTeamMembers)),
		BlogPosts:      newRepo[models.BlogPost](KeyBlogPosts, newBlobCollection[models.BlogPost](blobs, KeyBlogPosts)),
		HomePage:       newSingle[models.HomePage](KeyHomePage, &blobSingleton[models.HomePage]{blobs, KeyHomePage}, models.DefaultHomePage),
		AboutPage:      newSingle[models.AboutPage](KeyAboutPage, &blobSingleton[models.AboutPage]{blobs, KeyAboutPage}, models.DefaultAboutPage),
		GlobalSettings: newSingle[models.GlobalSettings](KeyGlobalSettings, &blobSingleton[models.GlobalSettings]{blobs, KeyGlobalSettings}, models.DefaultGlobalSettings),
		close:          blobs.Close,
	}
}

// NewFileStore opens a writable file store rooted at dir.
func NewFileStore(dir string) (*Store, error) {
	fb, err := newFileBlobs(dir)
	if err != nil {
		return nil, err
	}
	return newBlobStore(BackendFile, fb), nil
}

// NewSQLStore builds a store on an open gorm connection. The schema must
// already exist; see Models.
func NewSQLStore(db *gorm.DB) *Store {
	return &Store{
		Backend: BackendSQL,
		Projects: newRepo[models.Project](KeyProjects, &sqlCollection[models.Project, ProjectRow]{
			db: db, name: KeyProjects, order: orderNewest, bySlug: true,
			toRow: projectToRow, fromRow: projectFromRow,
		}),
		Services: newRepo[models.Service](KeyServices, &sqlCollection[models.Service, ServiceRow]{
			db: db, name: KeyServices, order: orderNewest, bySlug: true,
			toRow: serviceToRow, fromRow: serviceFromRow,
		}),
		Testimonials: newRepo[models.Testimonial](KeyTestimonials, &sqlCollection[models.Testimonial, TestimonialRow]{
			db: db, name: KeyTestimonials, order: orderNewest,
			toRow: testimonialToRow, fromRow: testimonialFromRow,
		}),
		TeamMembers: newRepo[models.TeamMember](KeyTeamMembers, &sqlCollection[models.TeamMember, TeamMemberRow]{
			db: db, name: KeyTeamMembers, order: orderNewest,
			toRow: teamMemberToRow, fromRow: teamMemberFromRow,
		}),
		BlogPosts: newRepo[models.BlogPost](KeyBlogPosts, &sqlCollection[models.BlogPost, BlogPostRow]{
			db: db, name: KeyBlogPosts, order: orderPublished, bySlug: true,
			toRow: blogPostToRow, fromRow: blogPostFromRow,
		}),
		HomePage: newSingle[models.HomePage](KeyHomePage, &sqlSingleton[models.HomePage, HomePageRow]{
			db: db, name: KeyHomePage, toRow: homePageToRow, fromRow: homePageFromRow,
		}, models.DefaultHomePage),
		AboutPage: newSingle[models.AboutPage](KeyAboutPage, &sqlSingleton[models.AboutPage, AboutPageRow]{
			db: db, name: KeyAboutPage, toRow: aboutPageToRow, fromRow: aboutPageFromRow,
		}, models.DefaultAboutPage),
		GlobalSettings: newSingle[models.GlobalSettings](KeyGlobalSettings, &sqlSingleton[models.GlobalSettings, GlobalSettingsRow]{
			db: db, name: KeyGlobalSettings, toRow: globalSettingsToRow, fromRow: globalSettingsFromRow,
		}, models.DefaultGlobalSettings),
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

// projectsReadOnly refuses project writes only.
func (s *Store) projectsReadOnly() {
	s.ProjectsReadOnly = true
	s.Projects.c = readOnlyCollection[models.Project]{s.Projects.c}
}

// readOnly swaps every backend for one that refuses writes.
func (s *Store) readOnly() {
	s.ReadOnly = true
	s.projectsReadOnly()
	s.Services.c = readOnlyCollection[models.Service]{s.Services.c}
	s.Testimonials.c = readOnlyCollection[models.Testimonial]{s.Testimonials.c}
	s.TeamMembers.c = readOnlyCollection[models.TeamMember]{s.TeamMembers.c}
	s.BlogPosts.c = readOnlyCollection[models.BlogPost]{s.BlogPosts.c}
	s.HomePage.s = readOnlySingleton[models.HomePage]{s.HomePage.s}
	s.AboutPage.s = readOnlySingleton[models.AboutPage]{s.AboutPage.s}
	s.GlobalSettings.s = readOnlySingleton[models.GlobalSettings]{s.GlobalSettings.s}
}

func (s *Store) Stats(ctx context.Context) Stats {
	return Stats{
		Projects:     s.Projects.Count(ctx),
		Services:     s.Services.Count(ctx),
		BlogPosts:    s.BlogPosts.Count(ctx),
		Testimonials: s.Testimonials.Count(ctx),
		TeamMembers:  s.TeamMembers.Count(ctx),
	}
}

// Close releases the backend connection.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
