package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vv-pms/pms-backend/internal/allocation/domain"
)

func setupRepo(t *testing.T) (*AllocationRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewAllocationRepository(db), mock, db
}

func TestAllocationRepository_Create(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("inserts allocation with empty roster", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO project_allocations`).
			WithArgs(int64(1), int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

		a, err := repo.Create(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(3), a.ID)
		assert.Equal(t, int64(1), a.ProjectID)
		assert.Equal(t, int64(10), a.ProfessorID)
		assert.Empty(t, a.StudentIDs)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps unique violation to conflict", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO project_allocations`).
			WithArgs(int64(1), int64(10)).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(context.Background(), 1, 10)
		require.ErrorIs(t, err, domain.ErrAllocationConflict)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAllocationRepository_FindByProjectID(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("loads allocation and roster", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, project_id, professor_id FROM project_allocations WHERE project_id`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "professor_id"}).
				AddRow(int64(3), int64(1), int64(10)))
		mock.ExpectQuery(`SELECT student_id FROM allocation_students`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"student_id"}).
				AddRow(int64(100)).AddRow(int64(101)))

		a, err := repo.FindByProjectID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, []int64{100, 101}, a.StudentIDs)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing allocation", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, project_id, professor_id FROM project_allocations WHERE project_id`).
			WithArgs(int64(42)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByProjectID(context.Background(), 42)
		require.ErrorIs(t, err, domain.ErrAllocationNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAllocationRepository_Students(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("duplicate roster entry maps to conflict", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO allocation_students`).
			WithArgs(int64(3), int64(100)).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.AddStudent(context.Background(), 3, 100)
		require.ErrorIs(t, err, domain.ErrAllocationConflict)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("removing an absent student reports not found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM allocation_students`).
			WithArgs(int64(3), int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RemoveStudent(context.Background(), 3, 999)
		require.ErrorIs(t, err, domain.ErrAllocationNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAllocationRepository_Delete(t *testing.T) {
	repo, mock, db := setupRepo(t)
	defer db.Close()

	t.Run("deletes roster rows then the allocation", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM allocation_students`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM project_allocations`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Delete(context.Background(), 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing allocation rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM allocation_students`).
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM project_allocations`).
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), 42)
		require.ErrorIs(t, err, domain.ErrAllocationNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
