package vacation_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-hradmin/internal/vacation"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (vacation.Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return vacation.NewRepository(gdb), mock
}

func TestVacationRepository_ListApprovedOverlapping(t *testing.T) {
	ctx := context.Background()

	t.Run("success - closed interval bounds", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		empID := uuid.NewString()
		start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(
			regexp.QuoteMeta(`SELECT * FROM "vacation_requests" WHERE employee_id = $1 AND status = $2 AND (start_date <= $3 AND end_date >= $4) ORDER BY start_date ASC`),
		).
			WithArgs(empID, "APPROVED", end, start).
			WillReturnRows(sqlmock.NewRows([]string{"id", "folio", "status", "start_date", "end_date", "days"}).
				AddRow(uuid.NewString(), "VAC-2024-0001", "APPROVED", time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC), start, 5))

		rows, err := repo.ListApprovedOverlapping(ctx, empID, start, end)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "VAC-2024-0001", rows[0].Folio)
		assert.True(t, rows[0].EndDate.Equal(start))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVacationRepository_Resolve(t *testing.T) {
	ctx := context.Background()
	comment := "enjoy"
	res := vacation.Resolution{
		Status:     vacation.StatusApproved,
		ApproverID: "dir-1",
		Comment:    &comment,
		ResolvedAt: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
	}
	resolveSQL := regexp.QuoteMeta(`UPDATE "vacation_requests" SET "approver_comment"=$1,"approver_id"=$2,"resolved_at"=$3,"status"=$4 WHERE id = $5 AND status = $6`)

	t.Run("success - guarded by pending status", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		id := uuid.NewString()

		mock.ExpectExec(resolveSQL).
			WithArgs(comment, "dir-1", res.ResolvedAt, "APPROVED", id, "PENDING").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Resolve(ctx, id, res))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative - already resolved", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		id := uuid.NewString()

		mock.ExpectExec(resolveSQL).
			WithArgs(comment, "dir-1", res.ResolvedAt, "APPROVED", id, "PENDING").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Resolve(ctx, id, res)

		assert.ErrorIs(t, err, vacation.ErrNotPending)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVacationRepository_FlagOverlap(t *testing.T) {
	ctx := context.Background()
	flagSQL := regexp.QuoteMeta(`UPDATE "vacation_requests" SET "approver_comment"=CASE WHEN approver_comment IS NULL OR approver_comment = '' THEN $1 ELSE approver_comment || chr(10) || $2 END,"overlap_flag"=$3 WHERE id = $4`)

	t.Run("success - note is appended on a new line", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		id := uuid.NewString()
		note := "Overlaps approved request VAC-2024-0001"

		mock.ExpectExec(flagSQL).
			WithArgs(note, note, true, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.FlagOverlap(ctx, id, note))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative - unknown request", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(flagSQL).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.FlagOverlap(ctx, uuid.NewString(), "note")

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestVacationRepository_Listing(t *testing.T) {
	ctx := context.Background()

	t.Run("success - own requests newest first", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		empID := uuid.NewString()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "vacation_requests" WHERE employee_id = $1 ORDER BY submitted_at DESC`)).
			WithArgs(empID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "folio"}).
				AddRow(uuid.NewString(), "VAC-2024-0002").
				AddRow(uuid.NewString(), "VAC-2024-0001"))

		rows, err := repo.ListByEmployee(ctx, empID)

		require.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - filters and date window", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "vacation_requests" WHERE start_date >= $1 AND status = $2 ORDER BY submitted_at DESC`)).
			WithArgs(from, "PENDING").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		rows, err := repo.ListFiltered(ctx, vacation.ListFilter{Status: "PENDING", From: &from})

		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - pending count", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		empID := uuid.NewString()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "vacation_requests" WHERE employee_id = $1 AND status = $2`)).
			WithArgs(empID, "PENDING").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repo.CountPendingByEmployee(ctx, empID)

		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}
