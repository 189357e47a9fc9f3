package media

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atech/cms/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var fixedNow = func() time.Time { return time.UnixMilli(1700000000000) }

func TestLocalUpload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "uploads")
	l := NewLocal(dir)
	l.now = fixedNow

	res, err := l.Upload(context.Background(), File{Name: "hero shot.png", ContentType: "image/png", Data: []byte("png")})
	require.NoError(t, err)
	assert.Equal(t, Result{
		URL:      "/uploads/1700000000000-hero-shot.png",
		Filename: "1700000000000-hero-shot.png",
		Size:     3,
		Type:     "image/png",
	}, res)

	data, err := os.ReadFile(filepath.Join(dir, res.Filename))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestSupabaseUpload(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotUpsert, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotUpsert = r.Header.Get("x-upsert")
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Key":"uploads/x"}`))
	}))
	defer srv.Close()

	s := NewSupabase(srv.URL+"/", "service-key", "uploads", srv.Client())
	s.now = fixedNow
	res, err := s.Upload(context.Background(), File{Name: "logo.svg", ContentType: "image/svg+xml", Data: []byte("<svg/>")})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/storage/v1/object/uploads/1700000000000-logo.svg", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "false", gotUpsert)
	assert.Equal(t, "image/svg+xml", gotType)
	assert.Equal(t, "<svg/>", gotBody)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/uploads/1700000000000-logo.svg", res.URL)
	assert.Equal(t, int64(6), res.Size)
}

func TestSupabaseUploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Bucket not found"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewSupabase(srv.URL, "k", "missing", srv.Client())
	_, err := s.Upload(context.Background(), File{Name: "a.png", Data: []byte("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bucket not found")
}

type stubUploader struct {
	res   Result
	err   error
	calls int
}

func (s *stubUploader) Upload(context.Context, File) (Result, error) {
	s.calls++
	return s.res, s.err
}

func TestFallback(t *testing.T) {
	primary := &stubUploader{res: Result{URL: "https://cdn/x.png"}}
	secondary := &stubUploader{res: Result{URL: "/uploads/x.png"}}
	u := Fallback{Primary: primary, Secondary: secondary}

	res, err := u.Upload(context.Background(), File{Name: "x.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x.png", res.URL)
	assert.Equal(t, 0, secondary.calls)

	primary.err = errors.New("storage down")
	res, err = u.Upload(context.Background(), File{Name: "x.png"})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/x.png", res.URL)
	assert.Equal(t, 1, secondary.calls)
}
