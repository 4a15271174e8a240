package employee_test

import (
	"context"
	"regexp"
	"testing"

	"go-hradmin/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (employee.Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return employee.NewRepository(gdb), mock
}

func TestEmployeeRepository_IncrementTaken(t *testing.T) {
	ctx := context.Background()
	incrementSQL := regexp.QuoteMeta(`UPDATE "employees" SET "taken_days"=taken_days + $1,"updated_at"=$2 WHERE id = $3`)

	t.Run("success - increment happens in sql", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		id := uuid.NewString()

		mock.ExpectExec(incrementSQL).
			WithArgs(dec("1.5"), sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.IncrementTaken(ctx, id, dec("1.5")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative - unknown employee", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(incrementSQL).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.IncrementTaken(ctx, uuid.NewString(), dec("5"))

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestEmployeeRepository_ApplyVacationAdjustment(t *testing.T) {
	ctx := context.Background()

	t.Run("success - only provided columns are written", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		id := uuid.NewString()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "employees" SET "taken_days"=$1,"updated_at"=$2 WHERE id = $3`)).
			WithArgs(dec("4"), sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ApplyVacationAdjustment(ctx, id, employee.VacationAdjustment{Taken: decPtr("4")})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmployeeRepository_Queries(t *testing.T) {
	ctx := context.Background()

	t.Run("success - row lock for balance writes", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		id := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE id = \$1 ORDER BY "employees"\."id" LIMIT .+ FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "taken_days"}).AddRow(id.String(), "Ana Perez", "3.5"))

		e, err := repo.FindByIDForUpdate(ctx, id.String())

		require.NoError(t, err)
		assert.Equal(t, id, e.ID)
		assert.True(t, dec("3.5").Equal(e.TakenDays))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - options list active employees only", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","full_name","area" FROM "employees" WHERE status = $1 ORDER BY full_name ASC`)).
			WithArgs("ACTIVE").
			WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "area"}).AddRow(uuid.NewString(), "Ana Perez", "Finance"))

		rows, err := repo.FindOptions(ctx)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Finance", rows[0].Area)
	})
}
