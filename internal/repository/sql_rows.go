package repository

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/atech/cms/internal/models"
)

// Row types mirror the Supabase tables. Lists and nested objects are jsonb.

type ProjectRow struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Slug        string `gorm:"not null;uniqueIndex"`
	Description string
	Featured    bool `gorm:"not null;default:false;index"`
	TechStack   datatypes.JSON
	ProjectURL  string `gorm:"column:project_url"`
	GithubURL   string `gorm:"column:github_url"`
	Thumbnail   string
	Images      datatypes.JSON
	CreatedAt   time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (ProjectRow) TableName() string { return "projects" }

type ServiceRow struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Slug        string `gorm:"not null;uniqueIndex"`
	Description string
	Icon        string
	CreatedAt   time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (ServiceRow) TableName() string { return "services" }

type BlogPostRow struct {
	ID            int64  `gorm:"primaryKey"`
	Title         string `gorm:"not null"`
	Slug          string `gorm:"not null;uniqueIndex"`
	Excerpt       string
	Content       string
	FeaturedImage string `gorm:"column:featured_image"`
	Category      string `gorm:"index"`
	Tags          datatypes.JSON
	Author        datatypes.JSON
	PublishedAt   *time.Time `gorm:"index"`
	CreatedAt     time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime:false"`
}

func (BlogPostRow) TableName() string { return "blog_posts" }

type TestimonialRow struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Role      string
	Company   string
	Content   string `gorm:"not null"`
	Avatar    string
	Rating    int
	CreatedAt time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (TestimonialRow) TableName() string { return "testimonials" }

type TeamMemberRow struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Role        string
	Bio         string
	Avatar      string
	SocialLinks datatypes.JSON `gorm:"column:social_links"`
	CreatedAt   time.Time      `gorm:"autoCreateTime:false;index"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime:false"`
}

func (TeamMemberRow) TableName() string { return "team_members" }

// Singleton tables hold a single row with id 1.

type HomePageRow struct {
	ID        int `gorm:"primaryKey;autoIncrement:false"`
	Hero      datatypes.JSON
	CTA       datatypes.JSON `gorm:"column:cta"`
	UpdatedAt time.Time
}

func (HomePageRow) TableName() string { return "home_page" }

type AboutPageRow struct {
	ID        int `gorm:"primaryKey;autoIncrement:false"`
	Hero      datatypes.JSON
	Mission   datatypes.JSON
	Vision    datatypes.JSON
	Values    datatypes.JSON
	Timeline  datatypes.JSON
	UpdatedAt time.Time
}

func (AboutPageRow) TableName() string { return "about_page" }

type GlobalSettingsRow struct {
	ID          int    `gorm:"primaryKey;autoIncrement:false"`
	SiteName    string `gorm:"column:site_name"`
	Logo        string
	Favicon     string
	SocialLinks datatypes.JSON `gorm:"column:social_links"`
	SEODefaults datatypes.JSON `gorm:"column:seo_defaults"`
	UpdatedAt   time.Time
}

func (GlobalSettingsRow) TableName() string { return "global_settings" }

// Models lists every row type, in migration order.
func Models() []any {
	return []any{
		&ProjectRow{}, &ServiceRow{}, &BlogPostRow{}, &TestimonialRow{}, &TeamMemberRow{},
		&HomePageRow{}, &AboutPageRow{}, &GlobalSettingsRow{},
	}
}

const singletonID = 1

func toJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// fromJSON leaves dst untouched for NULL columns.
func fromJSON(j datatypes.JSON, dst any) error {
	if len(j) == 0 || string(j) == "null" {
		return nil
	}
	return json.Unmarshal(j, dst)
}

func projectToRow(p *models.Project) (*ProjectRow, error) {
	tech, err := toJSON(nonNil(p.TechStack))
	if err != nil {
		return nil, err
	}
	images, err := toJSON(p.Images)
	if err != nil {
		return nil, err
	}
	return &ProjectRow{
		ID:          int64(p.ID),
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Featured:    bool(p.Featured),
		TechStack:   tech,
		ProjectURL:  p.ProjectURL,
		GithubURL:   p.GithubURL,
		Thumbnail:   string(p.Thumbnail),
		Images:      images,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}, nil
}

func projectFromRow(r *ProjectRow) (*models.Project, error) {
	p := &models.Project{
		Meta:        meta(r.ID, r.CreatedAt, r.UpdatedAt),
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		Featured:    models.Flag(r.Featured),
		TechStack:   models.StringList{},
		ProjectURL:  r.ProjectURL,
		GithubURL:   r.GithubURL,
		Thumbnail:   models.Media(r.Thumbnail),
	}
	if err := fromJSON(r.TechStack, &p.TechStack); err != nil {
		return nil, err
	}
	if err := fromJSON(r.Images, &p.Images); err != nil {
		return nil, err
	}
	return p, nil
}

func serviceToRow(s *models.Service) (*ServiceRow, error) {
	return &ServiceRow{
		ID:          int64(s.ID),
		Title:       s.Title,
		Slug:        s.Slug,
		Description: s.Description,
		Icon:        s.Icon,
		CreatedAt:   s.CreatedAt.Time,
		UpdatedAt:   s.UpdatedAt.Time,
	}, nil
}

func serviceFromRow(r *ServiceRow) (*models.Service, error) {
	return &models.Service{
		Meta:        meta(r.ID, r.CreatedAt, r.UpdatedAt),
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		Icon:        r.Icon,
	}, nil
}

func blogPostToRow(p *models.BlogPost) (*BlogPostRow, error) {
	var tags, author datatypes.JSON
	var err error
	if p.Tags != nil {
		if tags, err = toJSON(p.Tags); err != nil {
			return nil, err
		}
	}
	if p.Author != nil {
		if author, err = toJSON(p.Author); err != nil {
			return nil, err
		}
	}
	return &BlogPostRow{
		ID:            int64(p.ID),
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		FeaturedImage: string(p.FeaturedImage),
		Category:      p.Category,
		Tags:          tags,
		Author:        author,
		PublishedAt:   p.PublishedAt.Ptr(),
		CreatedAt:     p.CreatedAt.Time,
		UpdatedAt:     p.UpdatedAt.Time,
	}, nil
}

func blogPostFromRow(r *BlogPostRow) (*models.BlogPost, error) {
	p := &models.BlogPost{
		Meta:          meta(r.ID, r.CreatedAt, r.UpdatedAt),
		Title:         r.Title,
		Slug:          r.Slug,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		FeaturedImage: models.Media(r.FeaturedImage),
		Category:      r.Category,
		PublishedAt:   stamp(models.TimestampFrom(r.PublishedAt)),
	}
	if err := fromJSON(r.Tags, &p.Tags); err != nil {
		return nil, err
	}
	if len(r.Author) > 0 && string(r.Author) != "null" {
		p.Author = &models.TeamMember{}
		if err := fromJSON(r.Author, p.Author); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func testimonialToRow(t *models.Testimonial) (*TestimonialRow, error) {
	return &TestimonialRow{
		ID:        int64(t.ID),
		Name:      t.Name,
		Role:      t.Role,
		Company:   t.Company,
		Content:   t.Content,
		Avatar:    string(t.Avatar),
		Rating:    int(t.Rating),
		CreatedAt: t.CreatedAt.Time,
		UpdatedAt: t.UpdatedAt.Time,
	}, nil
}

func testimonialFromRow(r *TestimonialRow) (*models.Testimonial, error) {
	return &models.Testimonial{
		Meta:    meta(r.ID, r.CreatedAt, r.UpdatedAt),
		Name:    r.Name,
		Role:    r.Role,
		Company: r.Company,
		Content: r.Content,
		Avatar:  models.Media(r.Avatar),
		Rating:  models.Int(r.Rating),
	}, nil
}

func teamMemberToRow(m *models.TeamMember) (*TeamMemberRow, error) {
	links, err := toJSON(m.SocialLinks)
	if err != nil {
		return nil, err
	}
	return &TeamMemberRow{
		ID:          int64(m.ID),
		Name:        m.Name,
		Role:        m.Role,
		Bio:         m.Bio,
		Avatar:      string(m.Avatar),
		SocialLinks: links,
		CreatedAt:   m.CreatedAt.Time,
		UpdatedAt:   m.UpdatedAt.Time,
	}, nil
}

func teamMemberFromRow(r *TeamMemberRow) (*models.TeamMember, error) {
	m := &models.TeamMember{
		Meta:   meta(r.ID, r.CreatedAt, r.UpdatedAt),
		Name:   r.Name,
		Role:   r.Role,
		Bio:    r.Bio,
		Avatar: models.Media(r.Avatar),
	}
	if err := fromJSON(r.SocialLinks, &m.SocialLinks); err != nil {
		return nil, err
	}
	return m, nil
}

func homePageToRow(p *models.HomePage) (*HomePageRow, error) {
	hero, err := toJSON(p.Hero)
	if err != nil {
		return nil, err
	}
	cta, err := toJSON(p.CTA)
	if err != nil {
		return nil, err
	}
	return &HomePageRow{ID: singletonID, Hero: hero, CTA: cta, UpdatedAt: time.Now().UTC()}, nil
}

func homePageFromRow(r *HomePageRow) (*models.HomePage, error) {
	p := models.DefaultHomePage()
	if err := fromJSON(r.Hero, &p.Hero); err != nil {
		return nil, err
	}
	if err := fromJSON(r.CTA, &p.CTA); err != nil {
		return nil, err
	}
	return &p, nil
}

func aboutPageToRow(p *models.AboutPage) (*AboutPageRow, error) {
	row := &AboutPageRow{ID: singletonID, UpdatedAt: time.Now().UTC()}
	var err error
	if row.Hero, err = toJSON(p.Hero); err != nil {
		return nil, err
	}
	if row.Mission, err = toJSON(p.Mission); err != nil {
		return nil, err
	}
	if row.Vision, err = toJSON(p.Vision); err != nil {
		return nil, err
	}
	if row.Values, err = toJSON(nonNil(p.Values)); err != nil {
		return nil, err
	}
	if row.Timeline, err = toJSON(nonNil(p.Timeline)); err != nil {
		return nil, err
	}
	return row, nil
}

func aboutPageFromRow(r *AboutPageRow) (*models.AboutPage, error) {
	p := models.DefaultAboutPage()
	for _, f := range []struct {
		col datatypes.JSON
		dst any
	}{
		{r.Hero, &p.Hero},
		{r.Mission, &p.Mission},
		{r.Vision, &p.Vision},
		{r.Values, &p.Values},
		{r.Timeline, &p.Timeline},
	} {
		if err := fromJSON(f.col, f.dst); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func globalSettingsToRow(s *models.GlobalSettings) (*GlobalSettingsRow, error) {
	links, err := toJSON(s.SocialLinks)
	if err != nil {
		return nil, err
	}
	seo, err := toJSON(s.SEODefaults)
	if err != nil {
		return nil, err
	}
	return &GlobalSettingsRow{
		ID:          singletonID,
		SiteName:    s.SiteName,
		Logo:        string(s.Logo),
		Favicon:     string(s.Favicon),
		SocialLinks: links,
		SEODefaults: seo,
		UpdatedAt:   time.Now().UTC(),
	}, nil
}

func globalSettingsFromRow(r *GlobalSettingsRow) (*models.GlobalSettings, error) {
	s := &models.GlobalSettings{
		SiteName: r.SiteName,
		Logo:     models.Media(r.Logo),
		Favicon:  models.Media(r.Favicon),
	}
	if err := fromJSON(r.SocialLinks, &s.SocialLinks); err != nil {
		return nil, err
	}
	if err := fromJSON(r.SEODefaults, &s.SEODefaults); err != nil {
		return nil, err
	}
	return s, nil
}

func meta(id int64, created, updated time.Time) models.Meta {
	return models.Meta{
		ID:        models.ID(id),
		CreatedAt: stamp(models.Timestamp{Time: created}),
		UpdatedAt: stamp(models.Timestamp{Time: updated}),
	}
}

// stamp normalises a database time to UTC milliseconds.
func stamp(t models.Timestamp) models.Timestamp {
	if t.IsZero() {
		return t
	}
	return models.At(t.Time)
}

func nonNil[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
