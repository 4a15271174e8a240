package audit

import (
	"context"
	"database/sql"
	"time"

	"go-hradmin/internal/shared/connection"

	"gorm.io/gorm"
)

type ListFilter struct {
	ActorID string
	Kind    Kind
	From    *time.Time
	To      *time.Time
}

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Event) error
	List(ctx context.Context, filter ListFilter, offset, limit int) ([]Event, int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *Event) error {
	return connection.Session(ctx, r.db, r.tx).Create(e).Error
}

func (r *repository) List(ctx context.Context, filter ListFilter, offset, limit int) ([]Event, int64, error) {
	q := connection.Session(ctx, r.db, r.tx).Model(&Event{})
	if filter.ActorID != "" {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at < ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Event
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}
