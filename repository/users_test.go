package repository

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteUserRecomputesRatingsOfReviewedTitles(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT DISTINCT title_id FROM reviews").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"title_id"}).AddRow(7).AddRow(9))
	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Title 7 keeps one review by another user; title 9 loses its only one.
	expectRatingRecompute(mock, 7, []int32{6}, int64(6))
	expectRatingRecompute(mock, 9, []int32{}, nil)
	mock.ExpectCommit()

	err := repo.DeleteUser(1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserWithoutReviewsSkipsRecompute(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT DISTINCT title_id FROM reviews").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"title_id"}))
	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteUser(1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserMissingRollsBack(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT DISTINCT title_id FROM reviews").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"title_id"}))
	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteUser(99)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
