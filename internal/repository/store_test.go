package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/atech/cms/internal/models"
	"github.com/atech/cms/pkg/config"
	"github.com/atech/cms/pkg/database"
	appErr "github.com/atech/cms/pkg/errors"
	"github.com/atech/cms/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestFileStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func newTestKVStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := newBlobStore(BackendKV, newKVBlobs(rdb, "test:"))
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func newTestSQLStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "cms.db")), &gorm.Config{
		Logger:         database.NewGormLogger(false),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(Models()...))
	s := NewSQLStore(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// eachBackend runs fn against a fresh store of every strategy.
func eachBackend(t *testing.T, fn func(t *testing.T, s *Store)) {
	t.Run("file", func(t *testing.T) { fn(t, newTestFileStore(t)) })
	t.Run("kv", func(t *testing.T) {
		s, _ := newTestKVStore(t)
		fn(t, s)
	})
	t.Run("sql", func(t *testing.T) { fn(t, newTestSQLStore(t)) })
}

func demoProject() *models.Project {
	return &models.Project{
		Title:       "Demo",
		Slug:        "demo",
		Description: "A demo project",
		Featured:    true,
		TechStack:   models.StringList{"Go", "Postgres"},
		Thumbnail:   "/uploads/demo.png",
		Images:      models.MediaList{"/uploads/a.png", "/uploads/b.png"},
	}
}

func TestProjectLifecycle(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()

		created, err := s.Projects.Create(ctx, demoProject())
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		require.False(t, created.CreatedAt.IsZero())
		assert.True(t, created.CreatedAt.Equal(created.UpdatedAt.Time))

		got, ok := s.Projects.Get(ctx, created.ID.String())
		require.True(t, ok)
		assert.Equal(t, "Demo", got.Title)
		assert.True(t, bool(got.Featured))
		assert.Equal(t, models.StringList{"Go", "Postgres"}, got.TechStack)
		assert.Equal(t, models.MediaList{"/uploads/a.png", "/uploads/b.png"}, got.Images)
		assert.Equal(t, models.Media("/uploads/demo.png"), got.Thumbnail)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt.Time))

		bySlug, ok := s.Projects.GetBySlug(ctx, "demo")
		require.True(t, ok)
		assert.Equal(t, created.ID, bySlug.ID)

		_, ok = s.Projects.GetBySlug(ctx, "Demo")
		assert.False(t, ok, "slug lookup is case sensitive")

		s.Projects.now = func() time.Time { return created.CreatedAt.Add(time.Minute) }
		updated, err := s.Projects.Update(ctx, created.ID.String(), func(p *models.Project) error {
			return json.Unmarshal([]byte(`{"title":"Renamed","id":1,"createdAt":"2001-01-01T00:00:00Z"}`), p)
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "demo", updated.Slug, "absent fields keep their value")
		assert.Equal(t, created.ID, updated.ID)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt.Time))
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt.Time))

		list := s.Projects.List(ctx)
		require.Len(t, list, 1)
		assert.Equal(t, "Renamed", list[0].Title)

		require.NoError(t, s.Projects.Delete(ctx, created.ID.String()))
		_, ok = s.Projects.Get(ctx, created.ID.String())
		assert.False(t, ok)
		assert.Empty(t, s.Projects.List(ctx))

		require.NoError(t, s.Projects.Delete(ctx, created.ID.String()), "deleting a missing id succeeds")
		require.NoError(t, s.Projects.Delete(ctx, "not-a-number"))
	})
}

func TestUpdateUnknownID(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		noop := func(*models.Service) error { return nil }

		_, err := s.Services.Update(ctx, "12345", noop)
		require.Error(t, err)
		assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
		var ae *appErr.AppError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, map[string]any{"collection": KeyServices, "id": "12345"}, ae.Meta)

		_, err = s.Services.Update(ctx, "abc", noop)
		assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
	})
}

func TestUpdateApplyErrorLeavesRecord(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		created, err := s.Services.Create(ctx, &models.Service{Title: "Web", Slug: "web"})
		require.NoError(t, err)

		_, err = s.Services.Update(ctx, created.ID.String(), func(svc *models.Service) error {
			svc.Title = "changed"
			return appErr.New(appErr.CodeInvalid, "bad body")
		})
		require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

		got, ok := s.Services.Get(ctx, created.ID.String())
		require.True(t, ok)
		assert.Equal(t, "Web", got.Title)
	})
}

func TestGetMissing(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		_, ok := s.Projects.Get(ctx, "42")
		assert.False(t, ok)
		_, ok = s.Projects.Get(ctx, "forty-two")
		assert.False(t, ok)
		_, ok = s.Projects.GetBySlug(ctx, "")
		assert.False(t, ok)
		_, ok = s.Testimonials.GetBySlug(ctx, "anything")
		assert.False(t, ok)
		assert.NotNil(t, s.BlogPosts.List(ctx))
		assert.Empty(t, s.BlogPosts.List(ctx))
	})
}

func TestBlogPostRoundTrip(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		published := models.At(time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC))

		withDate, err := s.BlogPosts.Create(ctx, &models.BlogPost{
			Title:       "Launch",
			Slug:        "launch",
			Content:     "<p>hi</p>",
			Category:    "news",
			Tags:        models.StringList{"go"},
			PublishedAt: published,
			Author:      &models.TeamMember{Name: "Ada", Role: "CTO"},
		})
		require.NoError(t, err)

		undated, err := s.BlogPosts.Create(ctx, &models.BlogPost{Title: "Draft", Slug: "draft"})
		require.NoError(t, err)
		assert.True(t, undated.PublishedAt.Equal(undated.CreatedAt.Time), "publishedAt defaults to creation time")

		got, ok := s.BlogPosts.GetBySlug(ctx, "launch")
		require.True(t, ok)
		assert.Equal(t, withDate.ID, got.ID)
		assert.True(t, published.Equal(got.PublishedAt.Time))
		assert.Equal(t, models.StringList{"go"}, got.Tags)
		require.NotNil(t, got.Author)
		assert.Equal(t, "Ada", got.Author.Name)
		assert.Equal(t, "news", got.Category)

		assert.Len(t, s.BlogPosts.List(ctx), 2)
	})
}

func TestTeamMemberAndTestimonial(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		m, err := s.TeamMembers.Create(ctx, &models.TeamMember{
			Name:        "Grace",
			Role:        "Engineer",
			Avatar:      "/uploads/grace.png",
			SocialLinks: models.SocialLinks{GitHub: "https://github.com/grace"},
		})
		require.NoError(t, err)
		got, ok := s.TeamMembers.Get(ctx, m.ID.String())
		require.True(t, ok)
		assert.Equal(t, "https://github.com/grace", got.SocialLinks.GitHub)
		assert.Equal(t, models.Media("/uploads/grace.png"), got.Avatar)

		tm, err := s.Testimonials.Create(ctx, &models.Testimonial{Name: "Client", Content: "Great", Rating: 5})
		require.NoError(t, err)
		gotT, ok := s.Testimonials.Get(ctx, tm.ID.String())
		require.True(t, ok)
		assert.Equal(t, models.Int(5), gotT.Rating)
	})
}

func TestSingletons(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()

		home := s.HomePage.Get(ctx)
		assert.Equal(t, models.DefaultHomePage(), home)
		assert.Equal(t, "ATECH", s.GlobalSettings.Get(ctx).SiteName)
		assert.Len(t, s.AboutPage.Get(ctx).Values, 4)

		home.Hero.Title = "Hello"
		_, err := s.HomePage.Update(ctx, home)
		require.NoError(t, err)
		assert.Equal(t, "Hello", s.HomePage.Get(ctx).Hero.Title)

		home.Hero.Title = "Again"
		_, err = s.HomePage.Update(ctx, home)
		require.NoError(t, err)
		assert.Equal(t, "Again", s.HomePage.Get(ctx).Hero.Title)

		settings := models.GlobalSettings{
			SiteName:    "ATECH Labs",
			SocialLinks: models.SocialLinks{Twitter: "https://x.com/atech"},
			SEODefaults: models.SEODefaults{MetaTitle: "ATECH"},
		}
		_, err = s.GlobalSettings.Update(ctx, settings)
		require.NoError(t, err)
		assert.Equal(t, settings, s.GlobalSettings.Get(ctx))

		about := s.AboutPage.Get(ctx)
		about.Values = about.Values[:1]
		_, err = s.AboutPage.Update(ctx, about)
		require.NoError(t, err)
		assert.Len(t, s.AboutPage.Get(ctx).Values, 1)
	})
}

func TestStats(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		_, err := s.Projects.Create(ctx, demoProject())
		require.NoError(t, err)
		_, err = s.Services.Create(ctx, &models.Service{Title: "Web", Slug: "web"})
		require.NoError(t, err)
		_, err = s.Services.Create(ctx, &models.Service{Title: "Mobile", Slug: "mobile"})
		require.NoError(t, err)

		assert.Equal(t, Stats{Projects: 1, Services: 2}, s.Stats(ctx))
	})
}

func TestBlobIDsAreUniqueWithinOneMillisecond(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()
	fixed := time.Date(2024, 5, 5, 5, 5, 5, 0, time.UTC)
	s.Services.now = func() time.Time { return fixed }

	a, err := s.Services.Create(ctx, &models.Service{Title: "A", Slug: "a"})
	require.NoError(t, err)
	b, err := s.Services.Create(ctx, &models.Service{Title: "B", Slug: "b"})
	require.NoError(t, err)

	assert.Equal(t, models.ID(fixed.UnixMilli()), a.ID)
	assert.Equal(t, a.ID+1, b.ID)
}

func TestFileStoreLayout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.TeamMembers.Create(ctx, &models.TeamMember{Name: "Grace"})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "team-members.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[\n  {\n    \"id\": ")

	_, err = s.HomePage.Update(ctx, models.DefaultHomePage())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "home-page.json"))
}

func TestFileStoreToleratesCorruptDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "global-settings.json"), []byte("[1,2"), 0o644))
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	assert.Empty(t, s.Projects.List(ctx))
	assert.Equal(t, 0, s.Projects.Count(ctx))
	assert.Equal(t, models.DefaultGlobalSettings(), s.GlobalSettings.Get(ctx))

	_, err = s.Projects.Create(ctx, demoProject())
	require.Error(t, err, "writes do not clobber an unreadable document")
}

func TestFileStoreReadsLegacyDocuments(t *testing.T) {
	dir := t.TempDir()
	legacy := `[{"id":"1712345678901","title":"Old","slug":"old","featured":"true",
		"thumbnail":{"data":{"attributes":{"url":"/t.png"}}},"createdAt":"2024-04-05T10:00:00.000Z"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.json"), []byte(legacy), 0o644))
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	got, ok := s.Projects.Get(context.Background(), "1712345678901")
	require.True(t, ok)
	assert.True(t, bool(got.Featured))
	assert.Equal(t, models.Media("/t.png"), got.Thumbnail)
	assert.Equal(t, []string(nil), []string(got.TechStack))
}

func TestFileStoreKeepsGoodRecordsNextToOddOnes(t *testing.T) {
	dir := t.TempDir()
	projects := `[
		{"id":1712345678901,"title":"Good","slug":"good","techStack":["Go"]},
		{"id":1712345678902,"title":"Loose","slug":"loose","techStack":"Go, React","featured":{"x":1}},
		"stray",
		{"id":1712345678903,"title":42,"slug":"broken","createdAt":"soon"}
	]`
	testimonials := `[
		{"id":1,"name":"Ann","content":"Great","rating":"5"},
		{"id":2,"name":"Bob","content":"Fine","rating":4}
	]`
	team := `[{"id":1,"name":"Ada","socialLinks":"n/a"},{"id":2,"name":"Grace","socialLinks":{"github":"g","twitter":7}}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.json"), []byte(projects), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testimonials.json"), []byte(testimonials), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "team-members.json"), []byte(team), 0o644))
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	list := s.Projects.List(ctx)
	require.Len(t, list, 3)
	loose, ok := s.Projects.GetBySlug(ctx, "loose")
	require.True(t, ok)
	assert.Equal(t, models.StringList{"Go", "React"}, loose.TechStack)
	assert.False(t, bool(loose.Featured))
	broken, ok := s.Projects.GetBySlug(ctx, "broken")
	require.True(t, ok, "a mistyped field leaves the rest of the record readable")
	assert.Empty(t, broken.Title)
	assert.True(t, broken.CreatedAt.IsZero())

	ratings := map[string]models.Int{}
	for _, tm := range s.Testimonials.List(ctx) {
		ratings[tm.Name] = tm.Rating
	}
	assert.Equal(t, map[string]models.Int{"Ann": 5, "Bob": 4}, ratings)

	members := s.TeamMembers.List(ctx)
	require.Len(t, members, 2)
	for _, m := range members {
		switch m.Name {
		case "Ada":
			assert.Equal(t, models.SocialLinks{}, m.SocialLinks)
		case "Grace":
			assert.Equal(t, models.SocialLinks{GitHub: "g"}, m.SocialLinks)
		}
	}

	created, err := s.Projects.Create(ctx, demoProject())
	require.NoError(t, err, "odd records do not block writes")
	assert.Greater(t, int64(created.ID), int64(1712345678903))
	_, err = s.Projects.Update(ctx, loose.ID.String(), func(p *models.Project) error {
		p.Title = "Tidy"
		return nil
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "projects.json"))
	require.NoError(t, err)
	var stored []json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 5)
	assert.JSONEq(t, `"stray"`, string(stored[2]), "undecodable elements are written back as they were")
	assert.Contains(t, string(stored[3]), `"createdAt": "soon"`)
	assert.Contains(t, string(stored[1]), `"Tidy"`)
	assert.Contains(t, string(stored[1]), `"React"`)
	assert.Len(t, s.Projects.List(ctx), 4)
}

func TestKVStoreUsesPrefixedKeys(t *testing.T) {
	s, mr := newTestKVStore(t)
	ctx := context.Background()
	_, err := s.Projects.Create(ctx, demoProject())
	require.NoError(t, err)
	_, err = s.AboutPage.Update(ctx, models.DefaultAboutPage())
	require.NoError(t, err)

	assert.True(t, mr.Exists("test:projects"))
	assert.True(t, mr.Exists("test:about-page"))
}

func TestKVStoreReadFailureIsEmpty(t *testing.T) {
	s, mr := newTestKVStore(t)
	mr.Close()
	ctx := context.Background()

	assert.Empty(t, s.Services.List(ctx))
	assert.Equal(t, models.DefaultHomePage(), s.HomePage.Get(ctx))
	_, err := s.Services.Create(ctx, &models.Service{Title: "x", Slug: "x"})
	require.Error(t, err)
}

func TestSQLStoreOrdering(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, slug := range []string{"first", "second", "third"} {
		s.Services.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		_, err := s.Services.Create(ctx, &models.Service{Title: slug, Slug: slug})
		require.NoError(t, err)
	}
	list := s.Services.List(ctx)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{list[0].Slug, list[1].Slug, list[2].Slug})

	s.BlogPosts.now = func() time.Time { return base }
	_, err := s.BlogPosts.Create(ctx, &models.BlogPost{Title: "old", Slug: "old", PublishedAt: models.At(base.AddDate(0, 0, -10))})
	require.NoError(t, err)
	_, err = s.BlogPosts.Create(ctx, &models.BlogPost{Title: "new", Slug: "new", PublishedAt: models.At(base.AddDate(0, 0, 10))})
	require.NoError(t, err)
	posts := s.BlogPosts.List(ctx)
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Slug)
}

func TestSQLStoreDuplicateSlugConflicts(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()
	_, err := s.Projects.Create(ctx, demoProject())
	require.NoError(t, err)
	_, err = s.Projects.Create(ctx, demoProject())
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeConflict))
}

func TestReadOnlyStoreRefusesWrites(t *testing.T) {
	dir := t.TempDir()
	seed, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()
	created, err := seed.Projects.Create(ctx, demoProject())
	require.NoError(t, err)

	s, err := Open(ctx, Options{DataDir: dir, Hosted: true})
	require.NoError(t, err)
	assert.Equal(t, BackendFile, s.Backend)
	assert.True(t, s.ReadOnly)
	assert.True(t, s.ProjectsReadOnly)

	_, ok := s.Projects.Get(ctx, created.ID.String())
	assert.True(t, ok, "reads still work")

	_, err = s.Projects.Create(ctx, demoProject())
	assert.True(t, appErr.IsCode(err, appErr.CodeBackendNotConfigured))
	_, err = s.Projects.Update(ctx, created.ID.String(), func(*models.Project) error { return nil })
	assert.True(t, appErr.IsCode(err, appErr.CodeBackendNotConfigured))
	err = s.Projects.Delete(ctx, created.ID.String())
	assert.True(t, appErr.IsCode(err, appErr.CodeBackendNotConfigured))
	_, err = s.HomePage.Update(ctx, models.DefaultHomePage())
	assert.True(t, appErr.IsCode(err, appErr.CodeBackendNotConfigured))

	assert.Len(t, seed.Projects.List(ctx), 1)
}

func TestOpenKV(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")
	s, err := Open(context.Background(), Options{KVURL: "redis://" + mr.Addr(), KVToken: "secret", KVPrefix: "cms:"})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, BackendKV, s.Backend)
	assert.False(t, s.ReadOnly)
	_, err = s.Services.Create(context.Background(), &models.Service{Title: "Web", Slug: "web"})
	require.NoError(t, err)
	assert.True(t, mr.Exists("cms:services"))
}

func TestOpenHostedKVRefusesOnlyProjectWrites(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("t")
	ctx := context.Background()
	s, err := Open(ctx, Options{KVURL: "redis://" + mr.Addr(), KVToken: "t", KVPrefix: "cms:", Hosted: true})
	require.NoError(t, err)
	defer s.Close()

	assert.False(t, s.ReadOnly)
	assert.True(t, s.ProjectsReadOnly)

	_, err = s.Projects.Create(ctx, demoProject())
	assert.True(t, appErr.IsCode(err, appErr.CodeBackendNotConfigured))
	assert.False(t, mr.Exists("cms:projects"))

	_, err = s.Services.Create(ctx, &models.Service{Title: "Web", Slug: "web"})
	require.NoError(t, err)
	_, err = s.BlogPosts.Create(ctx, &models.BlogPost{Title: "Hi", Slug: "hi"})
	require.NoError(t, err)
	_, err = s.HomePage.Update(ctx, models.DefaultHomePage())
	require.NoError(t, err)
	assert.True(t, mr.Exists("cms:services"))
	assert.True(t, mr.Exists("cms:home-page"))
	assert.Len(t, s.Services.List(ctx), 1)
}

func TestSelectBackend(t *testing.T) {
	cases := []struct {
		name             string
		opts             Options
		want             Backend
		readOnly         bool
		projectsReadOnly bool
	}{
		{"nothing", Options{}, BackendFile, false, false},
		{"hosted without services", Options{Hosted: true}, BackendFile, true, true},
		{"database needs service key", Options{DatabaseURL: "postgres://x"}, BackendFile, false, false},
		{"database", Options{DatabaseURL: "postgres://x", ServiceKey: "k"}, BackendSQL, false, false},
		{"hosted database", Options{DatabaseURL: "postgres://x", ServiceKey: "k", Hosted: true}, BackendSQL, false, false},
		{"kv needs token", Options{KVURL: "redis://x"}, BackendFile, false, false},
		{"kv", Options{KVURL: "redis://x", KVToken: "t"}, BackendKV, false, false},
		{"hosted kv", Options{KVURL: "redis://x", KVToken: "t", Hosted: true}, BackendKV, false, true},
		{"database wins", Options{DatabaseURL: "postgres://x", ServiceKey: "k", KVURL: "redis://x", KVToken: "t"}, BackendSQL, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SelectBackend(tc.opts))
			assert.Equal(t, tc.readOnly, ReadOnly(tc.opts))
			assert.Equal(t, tc.projectsReadOnly, ProjectsReadOnly(tc.opts))
		})
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		AppEnv:             "production",
		DataDir:            "/srv/data",
		KVURL:              "redis://kv:6379",
		KVToken:            "secret",
		KVPrefix:           "cms:",
		SupabaseServiceKey: "service-key",
		Hosted:             true,
	}
	opts := OptionsFromConfig(cfg)
	assert.Equal(t, Options{
		DataDir:    "/srv/data",
		ServiceKey: "service-key",
		KVURL:      "redis://kv:6379",
		KVToken:    "secret",
		KVPrefix:   "cms:",
		Hosted:     true,
	}, opts)
	assert.Equal(t, BackendKV, SelectBackend(opts))

	cfg.AppEnv = "development"
	cfg.DatabaseURL = "postgres://x"
	opts = OptionsFromConfig(cfg)
	assert.True(t, opts.SQLDebug)
	assert.Equal(t, BackendSQL, SelectBackend(opts))
}
