package rbac

import (
	"go-hradmin/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role domain.Role, resource, action string) (bool, error)
	Permissions(role domain.Role) ([]Permission, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

// NewService loads the static role policy into enforcer.
func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	enforcer.ClearPolicy()
	for role, perms := range Policies {
		for _, p := range perms {
			if _, err := enforcer.AddPolicy(role.String(), p.Resource, p.Action); err != nil {
				return nil, err
			}
		}
	}
	for _, edge := range Inheritance {
		if _, err := enforcer.AddGroupingPolicy(edge[0].String(), edge[1].String()); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(role domain.Role, resource, action string) (bool, error) {
	allowed, err := s.enforcer.Enforce(role.String(), resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role.String()),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role.String()),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Permissions(role domain.Role) ([]Permission, error) {
	rows, err := s.enforcer.GetImplicitPermissionsForUser(role.String())
	if err != nil {
		return nil, err
	}
	perms := make([]Permission, 0, len(rows))
	for _, row := range rows {
		if len(row) >= 3 {
			perms = append(perms, Permission{Resource: row[1], Action: row[2]})
		}
	}
	return perms, nil
}
