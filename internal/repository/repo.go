package repository

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atech/cms/internal/models"
	appErr "github.com/atech/cms/pkg/errors"
	"github.com/atech/cms/pkg/logger"
)

// Collection is the CRUD surface every storage strategy implements for a
// collection of records. Get and GetBySlug return a CodeNotFound error for
// missing records; Delete does not.
type Collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id models.ID) (*T, error)
	GetBySlug(ctx context.Context, slug string) (*T, error)
	Create(ctx context.Context, rec *T) (*T, error)
	Update(ctx context.Context, id models.ID, apply func(*T) error) (*T, error)
	Delete(ctx context.Context, id models.ID) error
	Count(ctx context.Context) (int, error)
}

// Singleton stores one document. Load returns nil when nothing is stored.
type Singleton[T any] interface {
	Load(ctx context.Context) (*T, error)
	Save(ctx context.Context, v T) (T, error)
}

// Repo is the public face of a collection. Reads never fail: backend errors
// are logged and surface as empty results.
type Repo[T any] struct {
	name   string
	c      Collection[T]
	record func(*T) models.Record
	now    func() time.Time
}

func newRepo[T any, PT interface {
	*T
	models.Record
}](name string, c Collection[T]) *Repo[T] {
	return &Repo[T]{
		name:   name,
		c:      c,
		record: func(p *T) models.Record { return PT(p) },
		now:    time.Now,
	}
}

func (r *Repo[T]) List(ctx context.Context) []T {
	out, err := r.c.List(ctx)
	if err != nil {
		r.readFailed("list", err)
		return []T{}
	}
	if out == nil {
		return []T{}
	}
	return out
}

// Get looks a record up by its id in string form. Ids that are not integers
// match nothing.
func (r *Repo[T]) Get(ctx context.Context, id string) (*T, bool) {
	n, ok := models.ParseID(id)
	if !ok {
		return nil, false
	}
	rec, err := r.c.Get(ctx, n)
	if err != nil {
		if !appErr.IsCode(err, appErr.CodeNotFound) {
			r.readFailed("get", err, zap.String("id", id))
		}
		return nil, false
	}
	return rec, true
}

func (r *Repo[T]) GetBySlug(ctx context.Context, slug string) (*T, bool) {
	if slug == "" {
		return nil, false
	}
	rec, err := r.c.GetBySlug(ctx, slug)
	if err != nil {
		if !appErr.IsCode(err, appErr.CodeNotFound) {
			r.readFailed("get by slug", err, zap.String("slug", slug))
		}
		return nil, false
	}
	return rec, true
}

// Create stores rec under a fresh id. Any id or timestamps on rec are
// replaced.
func (r *Repo[T]) Create(ctx context.Context, rec *T) (*T, error) {
	m := r.record(rec)
	m.Base().ID = 0
	m.Stamp(r.now(), true)
	return r.c.Create(ctx, rec)
}

// Update loads the record, lets apply modify it and stores the result.
// The id and creation time cannot be changed by apply.
func (r *Repo[T]) Update(ctx context.Context, id string, apply func(*T) error) (*T, error) {
	n, ok := models.ParseID(id)
	if !ok {
		return nil, appErr.Newf(appErr.CodeNotFound, "%s %q not found", r.name, id).
			WithMeta("collection", r.name).WithMeta("id", id)
	}
	now := r.now()
	return r.c.Update(ctx, n, func(cur *T) error {
		m := r.record(cur)
		prev := *m.Base()
		if err := apply(cur); err != nil {
			return err
		}
		m.Base().ID = prev.ID
		m.Base().CreatedAt = prev.CreatedAt
		m.Stamp(now, false)
		return nil
	})
}

// Delete removes the record if it exists.
func (r *Repo[T]) Delete(ctx context.Context, id string) error {
	n, ok := models.ParseID(id)
	if !ok {
		return nil
	}
	return r.c.Delete(ctx, n)
}

func (r *Repo[T]) Count(ctx context.Context) int {
	n, err := r.c.Count(ctx)
	if err != nil {
		r.readFailed("count", err)
		return 0
	}
	return n
}

func (r *Repo[T]) readFailed(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("collection", r.name), zap.String("op", op), zap.Error(err))
	logger.L().Warn("content read failed", fields...)
}

// Single is the public face of a singleton document.
type Single[T any] struct {
	name string
	s    Singleton[T]
	def  func() T
}

func newSingle[T any](name string, s Singleton[T], def func() T) *Single[T] {
	return &Single[T]{name: name, s: s, def: def}
}

// Get returns the stored document, or the default when it is absent or
// cannot be read.
func (s *Single[T]) Get(ctx context.Context) T {
	v, err := s.s.Load(ctx)
	if err != nil {
		logger.L().Warn("content read failed", zap.String("singleton", s.name), zap.Error(err))
		return s.def()
	}
	if v == nil {
		return s.def()
	}
	return *v
}

// Update replaces the stored document.
func (s *Single[T]) Update(ctx context.Context, v T) (T, error) {
	return s.s.Save(ctx, v)
}

func notFound(name string, id models.ID) error {
	return appErr.Newf(appErr.CodeNotFound, "%s %d not found", strings.TrimSuffix(name, "s"), id).
		WithMeta("collection", name).WithMeta("id", id.String())
}

func slugNotFound(name, slug string) error {
	return appErr.Newf(appErr.CodeNotFound, "%s %q not found", strings.TrimSuffix(name, "s"), slug).
		WithMeta("collection", name).WithMeta("slug", slug)
}
