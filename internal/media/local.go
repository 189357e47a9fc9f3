package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atech/cms/pkg/utils"
)

// Local writes uploads into Dir. They are served under URLPrefix.
type Local struct {
	Dir       string
	URLPrefix string
	now       func() time.Time
}

func NewLocal(dir string) *Local {
	return &Local{Dir: dir, URLPrefix: "/uploads", now: time.Now}
}

func (l *Local) Upload(_ context.Context, f File) (Result, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create upload dir: %w", err)
	}
	name := utils.UploadName(l.now(), f.Name)
	if err := os.WriteFile(filepath.Join(l.Dir, name), f.Data, 0o644); err != nil {
		return Result{}, fmt.Errorf("write upload: %w", err)
	}
	return Result{
		URL:      l.URLPrefix + "/" + name,
		Filename: name,
		Size:     int64(len(f.Data)),
		Type:     f.ContentType,
	}, nil
}
