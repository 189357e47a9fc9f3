package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/atech/cms/internal/models"
	"github.com/atech/cms/pkg/logger"
)

// blobStore keeps whole JSON documents under string keys. The file and KV
// strategies differ only in how they implement it.
type blobStore interface {
	// Read returns nil when the key is absent.
	Read(ctx context.Context, key string) ([]byte, error)
	// Mutate runs fn on the current document under the store's exclusion
	// and writes what fn returns. A nil result leaves the document as is.
	// An error from fn aborts without writing and is returned unchanged.
	Mutate(ctx context.Context, key string, fn func(cur []byte) ([]byte, error)) error
	Close() error
}

// blobCollection stores a collection as one JSON array.
type blobCollection[T any] struct {
	blobs  blobStore
	key    string
	record func(*T) models.Record
}

func newBlobCollection[T any, PT interface {
	*T
	models.Record
}](blobs blobStore, key string) *blobCollection[T] {
	return &blobCollection[T]{
		blobs:  blobs,
		key:    key,
		record: func(p *T) models.Record { return PT(p) },
	}
}

// blobEntry is one element of a stored array. Elements that decode keep
// their original bytes until they change, so fields the model does not know
// survive a rewrite. Elements that do not decode are hidden from reads but
// written back untouched.
type blobEntry[T any] struct {
	raw json.RawMessage
	rec T
	ok  bool
	id  models.ID
}

func (c *blobCollection[T]) decode(raw []byte) ([]blobEntry[T], error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	out := make([]blobEntry[T], 0, len(elems))
	for i, el := range elems {
		e := blobEntry[T]{raw: el}
		if isObject(el) {
			err := json.Unmarshal(el, &e.rec)
			var typeErr *json.UnmarshalTypeError
			switch {
			case err == nil:
				e.ok = true
			case errors.As(err, &typeErr):
				// The other fields are still decoded.
				e.ok = true
				logger.L().Warn("content record partially decoded",
					zap.String("collection", c.key), zap.Int("index", i), zap.Error(err))
			default:
				logger.L().Warn("content record skipped",
					zap.String("collection", c.key), zap.Int("index", i), zap.Error(err))
			}
		} else {
			logger.L().Warn("content record skipped",
				zap.String("collection", c.key), zap.Int("index", i), zap.String("reason", "not an object"))
		}
		if e.ok {
			e.id = c.record(&e.rec).Base().ID
		} else {
			var head struct {
				ID models.ID `json:"id"`
			}
			_ = json.Unmarshal(el, &head)
			e.id = head.ID
		}
		out = append(out, e)
	}
	return out, nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func (c *blobCollection[T]) encode(entries []blobEntry[T]) ([]byte, error) {
	out := make([]any, len(entries))
	for i := range entries {
		if entries[i].raw != nil {
			out[i] = entries[i].raw
		} else {
			out[i] = &entries[i].rec
		}
	}
	return encode(out)
}

func encode(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func (c *blobCollection[T]) List(ctx context.Context) ([]T, error) {
	raw, err := c.blobs.Read(ctx, c.key)
	if err != nil {
		return nil, err
	}
	entries, err := c.decode(raw)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if e.ok {
			out = append(out, e.rec)
		}
	}
	return out, nil
}

func (c *blobCollection[T]) find(ctx context.Context, match func(models.Record) bool) (*T, bool, error) {
	items, err := c.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range items {
		if match(c.record(&items[i])) {
			return &items[i], true, nil
		}
	}
	return nil, false, nil
}

func (c *blobCollection[T]) Get(ctx context.Context, id models.ID) (*T, error) {
	rec, ok, err := c.find(ctx, func(r models.Record) bool { return r.Base().ID == id })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound(c.key, id)
	}
	return rec, nil
}

func (c *blobCollection[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	rec, ok, err := c.find(ctx, func(r models.Record) bool { return r.GetSlug() == slug })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, slugNotFound(c.key, slug)
	}
	return rec, nil
}

func (c *blobCollection[T]) Create(ctx context.Context, rec *T) (*T, error) {
	err := c.blobs.Mutate(ctx, c.key, func(cur []byte) ([]byte, error) {
		entries, err := c.decode(cur)
		if err != nil {
			return nil, err
		}
		m := c.record(rec).Base()
		m.ID = nextID(entries, m.CreatedAt.Time)
		return c.encode(append(entries, blobEntry[T]{rec: *rec, ok: true, id: m.ID}))
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// nextID derives the id from the creation time in milliseconds and moves
// past the current maximum when two records land in the same millisecond.
// Undecodable elements still hold their ids.
func nextID[T any](entries []blobEntry[T], created time.Time) models.ID {
	if created.IsZero() {
		created = time.Now()
	}
	id := models.ID(created.UnixMilli())
	for _, e := range entries {
		if e.id >= id {
			id = e.id + 1
		}
	}
	return id
}

func (c *blobCollection[T]) Update(ctx context.Context, id models.ID, apply func(*T) error) (*T, error) {
	var out T
	err := c.blobs.Mutate(ctx, c.key, func(cur []byte) ([]byte, error) {
		entries, err := c.decode(cur)
		if err != nil {
			return nil, err
		}
		for i := range entries {
			e := &entries[i]
			if !e.ok || e.id != id {
				continue
			}
			if err := apply(&e.rec); err != nil {
				return nil, err
			}
			e.raw = nil
			out = e.rec
			return c.encode(entries)
		}
		return nil, notFound(c.key, id)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete also removes undecodable elements that carry the id.
func (c *blobCollection[T]) Delete(ctx context.Context, id models.ID) error {
	return c.blobs.Mutate(ctx, c.key, func(cur []byte) ([]byte, error) {
		entries, err := c.decode(cur)
		if err != nil {
			return nil, err
		}
		kept := entries[:0]
		for _, e := range entries {
			if e.id != id {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(entries) {
			return nil, nil
		}
		return c.encode(kept)
	})
}

func (c *blobCollection[T]) Count(ctx context.Context) (int, error) {
	items, err := c.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// blobSingleton stores a singleton as one JSON object.
type blobSingleton[T any] struct {
	blobs blobStore
	key   string
}

func (s *blobSingleton[T]) Load(ctx context.Context) (*T, error) {
	raw, err := s.blobs.Read(ctx, s.key)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("decode %s: %w", s.key, err)
		}
		logger.L().Warn("content record partially decoded", zap.String("singleton", s.key), zap.Error(err))
	}
	return &v, nil
}

func (s *blobSingleton[T]) Save(ctx context.Context, v T) (T, error) {
	err := s.blobs.Mutate(ctx, s.key, func([]byte) ([]byte, error) {
		return encode(v)
	})
	return v, err
}
