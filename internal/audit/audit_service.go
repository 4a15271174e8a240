package audit

import (
	"context"
	"time"

	auditerrors "go-hradmin/internal/audit/errors"

	"go.uber.org/zap"
)

const DefaultPageSize = 20

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListAuditEventsQuery) ([]AuditEventResponse, int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, q ListAuditEventsQuery) ([]AuditEventResponse, int64, error) {
	filter := ListFilter{ActorID: q.ActorID}
	if q.Kind != "" {
		kind := Kind(q.Kind)
		if !kind.Valid() {
			return nil, 0, auditerrors.ErrInvalidKind
		}
		filter.Kind = kind
	}
	if q.From != "" {
		from, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			return nil, 0, auditerrors.ErrInvalidDateFormat
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			return nil, 0, auditerrors.ErrInvalidDateFormat
		}
		// inclusive day: everything before the next midnight
		next := to.AddDate(0, 0, 1)
		filter.To = &next
	}

	page, pageSize := NormalizePage(q.Page, q.PageSize)
	rows, total, err := s.repo.List(ctx, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("list audit events failed", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]AuditEventResponse, len(rows))
	for i, e := range rows {
		resp[i] = AuditEventResponse{
			ID:         e.ID.String(),
			ActorID:    e.ActorID,
			Kind:       string(e.Kind),
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Detail:     e.Detail,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, total, nil
}

func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}
