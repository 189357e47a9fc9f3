package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atech/cms/pkg/utils"
)

// Supabase uploads into a public Supabase Storage bucket through its REST
// API.
type Supabase struct {
	baseURL    string
	serviceKey string
	bucket     string
	client     *http.Client
	now        func() time.Time
}

func NewSupabase(baseURL, serviceKey, bucket string, client *http.Client) *Supabase {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Supabase{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		client:     client,
		now:        time.Now,
	}
}

func (s *Supabase) objectPath(name string) string {
	return url.PathEscape(s.bucket) + "/" + url.PathEscape(name)
}

// PublicURL is where an object of the bucket can be fetched without a key.
func (s *Supabase) PublicURL(name string) string {
	return s.baseURL + "/storage/v1/object/public/" + s.objectPath(name)
}

func (s *Supabase) Upload(ctx context.Context, f File) (Result, error) {
	name := utils.UploadName(s.now(), f.Name)
	endpoint := s.baseURL + "/storage/v1/object/" + s.objectPath(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(f.Data))
	if err != nil {
		return Result{}, err
	}
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("supabase upload: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Result{}, fmt.Errorf("supabase upload: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return Result{
		URL:      s.PublicURL(name),
		Filename: name,
		Size:     int64(len(f.Data)),
		Type:     f.ContentType,
	}, nil
}
