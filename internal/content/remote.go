package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atech/cms/internal/models"
	"github.com/atech/cms/internal/shape"
	"github.com/atech/cms/pkg/logger"
)

const maxResponseBytes = 10 << 20

// Remote reads the public content API of a running server.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote returns a Remote for baseURL. A nil client gets one with the
// given timeout.
func NewRemote(baseURL string, client *http.Client, timeout time.Duration) *Remote {
	if baseURL == "" {
		baseURL = DefaultSiteURL
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Remote{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// get fetches an endpoint, strips the {data} envelope and the
// {id, attributes} wrapper, and decodes into dst.
func (r *Remote) get(ctx context.Context, path string, q url.Values, dst any) error {
	u := r.baseURL + "/api/content/" + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	data, err := shape.Unenvelope(body)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	flat, err := shape.FlattenJSON(data)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return json.Unmarshal(flat, dst)
}

func (r *Remote) failed(path string, err error) {
	logger.L().Warn("content fetch failed", zap.String("endpoint", path), zap.Error(err))
}

// fetchOne decodes a single object; null and failures give nil.
func fetchOne[T any](ctx context.Context, r *Remote, path string, q url.Values) *T {
	var v *T
	if err := r.get(ctx, path, q, &v); err != nil {
		r.failed(path, err)
		return nil
	}
	return v
}

// fetchList decodes an array; null and failures give an empty list.
func fetchList[T any](ctx context.Context, r *Remote, path string, q url.Values) []T {
	var v []T
	if err := r.get(ctx, path, q, &v); err != nil {
		r.failed(path, err)
		return []T{}
	}
	return orEmpty(v)
}

func slugQuery(slug string) url.Values {
	return url.Values{"slug": {slug}}
}

func (r *Remote) FetchHomePage(ctx context.Context) *models.HomePage {
	return fetchOne[models.HomePage](ctx, r, "home-page", nil)
}

func (r *Remote) FetchAboutPage(ctx context.Context) *models.AboutPage {
	return fetchOne[models.AboutPage](ctx, r, "about-page", nil)
}

func (r *Remote) FetchGlobalSettings(ctx context.Context) *models.GlobalSettings {
	return fetchOne[models.GlobalSettings](ctx, r, "global-settings", nil)
}

func (r *Remote) FetchServices(ctx context.Context) []models.Service {
	return fetchList[models.Service](ctx, r, "services", nil)
}

func (r *Remote) FetchService(ctx context.Context, slug string) *models.Service {
	if slug == "" {
		return nil
	}
	return fetchOne[models.Service](ctx, r, "services", slugQuery(slug))
}

func (r *Remote) FetchProjects(ctx context.Context, f ProjectFilter) []models.Project {
	if f.Slug != "" {
		if p := r.FetchProject(ctx, f.Slug); p != nil {
			return []models.Project{*p}
		}
		return []models.Project{}
	}
	q := url.Values{}
	if f.Featured {
		q.Set("featured", "true")
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return FilterProjects(fetchList[models.Project](ctx, r, "projects", q), f)
}

func (r *Remote) FetchProject(ctx context.Context, slug string) *models.Project {
	if slug == "" {
		return nil
	}
	return fetchOne[models.Project](ctx, r, "projects", slugQuery(slug))
}

func (r *Remote) FetchTestimonials(ctx context.Context, limit int) []models.Testimonial {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return LimitTestimonials(fetchList[models.Testimonial](ctx, r, "testimonials", q), limit)
}

func (r *Remote) FetchTeamMembers(ctx context.Context) []models.TeamMember {
	return fetchList[models.TeamMember](ctx, r, "team-members", nil)
}

func (r *Remote) FetchBlogPosts(ctx context.Context, f BlogFilter) []models.BlogPost {
	if f.Slug != "" {
		if p := r.FetchBlogPost(ctx, f.Slug); p != nil {
			return []models.BlogPost{*p}
		}
		return []models.BlogPost{}
	}
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return FilterBlogPosts(fetchList[models.BlogPost](ctx, r, "blog-posts", q), f)
}

func (r *Remote) FetchBlogPost(ctx context.Context, slug string) *models.BlogPost {
	if slug == "" {
		return nil
	}
	return fetchOne[models.BlogPost](ctx, r, "blog-posts", slugQuery(slug))
}
