package store

import (
	"context"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type ListOptions struct {
	Page  int
	Limit int
	// Order is a SQL ORDER BY clause; empty means newest first.
	Order string
}

// Normalize clamps page and limit to sane values.
func (o ListOptions) Normalize() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	return o
}

func (o ListOptions) Offset() int { return (o.Page - 1) * o.Limit }

// listPage counts the filtered query and fetches one page in opts.Order.
func listPage[T any](ctx context.Context, q *gorm.DB, opts ListOptions) ([]T, int64, error) {
	opts = opts.Normalize()
	order := opts.Order
	if order == "" {
		order = "created_at DESC"
	}
	var total int64
	if err := q.WithContext(ctx).Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]T, 0, opts.Limit)
	err := q.WithContext(ctx).Session(&gorm.Session{}).
		Order(order).
		Offset(opts.Offset()).
		Limit(opts.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
