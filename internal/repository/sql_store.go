package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/atech/cms/internal/models"
	appErr "github.com/atech/cms/pkg/errors"
)

const (
	orderNewest    = "created_at DESC, id DESC"
	orderPublished = "published_at IS NULL, published_at DESC, created_at DESC, id DESC"
)

// sqlCollection maps records of type T onto gorm rows of type R.
type sqlCollection[T, R any] struct {
	db      *gorm.DB
	name    string
	order   string
	bySlug  bool
	toRow   func(*T) (*R, error)
	fromRow func(*R) (*T, error)
}

func (c *sqlCollection[T, R]) List(ctx context.Context) ([]T, error) {
	var rows []R
	if err := c.db.WithContext(ctx).Order(c.order).Find(&rows).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list "+c.name+" failed")
	}
	out := make([]T, 0, len(rows))
	for i := range rows {
		rec, err := c.fromRow(&rows[i])
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "decode "+c.name+" row failed")
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (c *sqlCollection[T, R]) first(ctx context.Context, db *gorm.DB, query string, arg any) (*R, error) {
	var row R
	if err := db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (c *sqlCollection[T, R]) Get(ctx context.Context, id models.ID) (*T, error) {
	row, err := c.first(ctx, c.db, "id = ?", int64(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(c.name, id)
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get "+c.name+" failed")
	}
	return c.decode(row)
}

func (c *sqlCollection[T, R]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	if !c.bySlug {
		return nil, slugNotFound(c.name, slug)
	}
	row, err := c.first(ctx, c.db, "slug = ?", slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, slugNotFound(c.name, slug)
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get "+c.name+" by slug failed")
	}
	return c.decode(row)
}

func (c *sqlCollection[T, R]) decode(row *R) (*T, error) {
	rec, err := c.fromRow(row)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "decode "+c.name+" row failed")
	}
	return rec, nil
}

func (c *sqlCollection[T, R]) Create(ctx context.Context, rec *T) (*T, error) {
	row, err := c.toRow(rec)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "encode "+c.name+" failed")
	}
	if err := c.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, writeFailed(err, "create "+c.name+" failed")
	}
	return c.decode(row)
}

func (c *sqlCollection[T, R]) Update(ctx context.Context, id models.ID, apply func(*T) error) (*T, error) {
	var out *T
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := c.first(ctx, tx.Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", int64(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(c.name, id)
			}
			return appErr.Wrap(err, appErr.CodeInternal, "get "+c.name+" failed")
		}
		rec, err := c.decode(row)
		if err != nil {
			return err
		}
		if err := apply(rec); err != nil {
			return err
		}
		next, err := c.toRow(rec)
		if err != nil {
			return appErr.Wrap(err, appErr.CodeInvalid, "encode "+c.name+" failed")
		}
		if err := tx.Save(next).Error; err != nil {
			return writeFailed(err, "update "+c.name+" failed")
		}
		out, err = c.decode(next)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sqlCollection[T, R]) Delete(ctx context.Context, id models.ID) error {
	if err := c.db.WithContext(ctx).Where("id = ?", int64(id)).Delete(new(R)).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "delete "+c.name+" failed")
	}
	return nil
}

func (c *sqlCollection[T, R]) Count(ctx context.Context) (int, error) {
	var n int64
	if err := c.db.WithContext(ctx).Model(new(R)).Count(&n).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count "+c.name+" failed")
	}
	return int(n), nil
}

// sqlSingleton keeps a document in the row with id 1 of its table.
type sqlSingleton[T, R any] struct {
	db      *gorm.DB
	name    string
	toRow   func(*T) (*R, error)
	fromRow func(*R) (*T, error)
}

func (s *sqlSingleton[T, R]) Load(ctx context.Context) (*T, error) {
	var row R
	err := s.db.WithContext(ctx).Where("id = ?", singletonID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get "+s.name+" failed")
	}
	return s.fromRow(&row)
}

func (s *sqlSingleton[T, R]) Save(ctx context.Context, v T) (T, error) {
	row, err := s.toRow(&v)
	if err != nil {
		return v, appErr.Wrap(err, appErr.CodeInvalid, "encode "+s.name+" failed")
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
	if err != nil {
		return v, appErr.Wrap(err, appErr.CodeInternal, "update "+s.name+" failed")
	}
	return v, nil
}

// writeFailed reports unique violations as conflicts. It relies on the
// connection being opened with TranslateError.
func writeFailed(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return appErr.Wrap(err, appErr.CodeConflict, "slug already in use")
	}
	return appErr.Wrap(err, appErr.CodeInternal, msg)
}
