package repository

import (
	"context"

	"github.com/atech/cms/internal/models"
	appErr "github.com/atech/cms/pkg/errors"
)

// ErrBackendNotConfigured is returned by writes the hosted guard refuses.
var ErrBackendNotConfigured = appErr.New(appErr.CodeBackendNotConfigured,
	"database not configured: set DATABASE_URL and SUPABASE_SERVICE_ROLE_KEY to enable writes")

// readOnlyCollection passes reads through and refuses writes.
type readOnlyCollection[T any] struct {
	Collection[T]
}

func (readOnlyCollection[T]) Create(context.Context, *T) (*T, error) {
	return nil, ErrBackendNotConfigured
}

func (readOnlyCollection[T]) Update(context.Context, models.ID, func(*T) error) (*T, error) {
	return nil, ErrBackendNotConfigured
}

func (readOnlyCollection[T]) Delete(context.Context, models.ID) error {
	return ErrBackendNotConfigured
}

type readOnlySingleton[T any] struct {
	Singleton[T]
}

func (readOnlySingleton[T]) Save(_ context.Context, v T) (T, error) {
	return v, ErrBackendNotConfigured
}
