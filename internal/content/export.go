package content

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/atech/cms/pkg/logger"
)

// exportWorkers bounds concurrent fetches during an export.
const exportWorkers = 4

// Export writes every content type fetched from src into dir, one
// pretty-printed JSON file per type (home-page.json, projects.json, ...).
// Lists are unfiltered; blog posts are newest first.
func Export(ctx context.Context, src Source, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	docs := []struct {
		name  string
		fetch func(context.Context) any
	}{
		{"home-page", func(ctx context.Context) any { return src.FetchHomePage(ctx) }},
		{"about-page", func(ctx context.Context) any { return src.FetchAboutPage(ctx) }},
		{"global-settings", func(ctx context.Context) any { return src.FetchGlobalSettings(ctx) }},
		{"services", func(ctx context.Context) any { return src.FetchServices(ctx) }},
		{"projects", func(ctx context.Context) any { return src.FetchProjects(ctx, ProjectFilter{}) }},
		{"blog-posts", func(ctx context.Context) any { return src.FetchBlogPosts(ctx, BlogFilter{}) }},
		{"team-members", func(ctx context.Context) any { return src.FetchTeamMembers(ctx) }},
		{"testimonials", func(ctx context.Context) any { return src.FetchTestimonials(ctx, 0) }},
	}

	files := make([]string, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exportWorkers)
	for i, d := range docs {
		g.Go(func() error {
			b, err := json.MarshalIndent(d.fetch(gctx), "", "  ")
			if err != nil {
				return fmt.Errorf("encode %s: %w", d.name, err)
			}
			path := filepath.Join(dir, d.name+".json")
			if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", d.name, err)
			}
			files[i] = path
			logger.L().Debug("exported", zap.String("document", d.name), zap.Int("bytes", len(b)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
