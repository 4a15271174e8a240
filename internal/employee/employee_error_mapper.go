package employee

import (
	"errors"
	"strings"

	employeeerrors "go-hradmin/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	constraint := ""
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		constraint = pgErr.ConstraintName
	} else if msg := strings.ToLower(err.Error()); strings.Contains(msg, "duplicate key value") {
		for _, c := range []string{"uq_employee_number", "uq_employee_email", "uq_employee_user"} {
			if strings.Contains(msg, c) {
				constraint = c
				break
			}
		}
	}

	switch constraint {
	case "uq_employee_number":
		return employeeerrors.ErrEmployeeNumberAlreadyExists
	case "uq_employee_email":
		return employeeerrors.ErrEmployeeAlreadyExists
	case "uq_employee_user":
		return employeeerrors.ErrUserAlreadyLinked
	}
	return err
}
