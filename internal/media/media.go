// Package media stores uploaded images and returns the URL they are served
// from.
package media

import (
	"context"

	"go.uber.org/zap"

	"github.com/atech/cms/pkg/logger"
)

// File is an upload as received from the admin form.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Result is returned to the admin client as is.
type Result struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}

type Uploader interface {
	Upload(ctx context.Context, f File) (Result, error)
}

// Fallback tries Primary and falls back to Secondary on any error.
type Fallback struct {
	Primary   Uploader
	Secondary Uploader
}

func (f Fallback) Upload(ctx context.Context, file File) (Result, error) {
	res, err := f.Primary.Upload(ctx, file)
	if err == nil {
		return res, nil
	}
	logger.L().Warn("primary upload failed, using fallback",
		zap.String("filename", file.Name),
		zap.Error(err),
	)
	return f.Secondary.Upload(ctx, file)
}
