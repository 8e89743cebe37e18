package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/emzola/recensio/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

// expectRatingRecompute registers the score re-read and the rating write that
// every review mutation must run before its transaction commits. rating is
// nil when no scores remain.
func expectRatingRecompute(mock sqlmock.Sqlmock, titleID int64, scores []int32, rating interface{}) {
	rows := sqlmock.NewRows([]string{"score"})
	for _, score := range scores {
		rows.AddRow(score)
	}
	mock.ExpectQuery("SELECT score FROM reviews").
		WithArgs(titleID).
		WillReturnRows(rows)
	mock.ExpectExec("UPDATE titles SET rating").
		WithArgs(rating, titleID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestCreateReviewRecomputesRatingInSameTransaction(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(int64(7), int64(1), "haunting", int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "pub_date", "version"}).AddRow(42, time.Now(), 1))
	expectRatingRecompute(mock, 7, []int32{8}, int64(8))
	mock.ExpectCommit()

	review := &data.Review{TitleID: 7, UserID: 1, Text: "haunting", Score: 8}
	err := repo.CreateReview(review)
	require.NoError(t, err)
	assert.Equal(t, int64(42), review.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReviewRecomputesRating(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE reviews").
		WithArgs("revised", int64(4), int64(42), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(2))
	expectRatingRecompute(mock, 7, []int32{4, 8}, int64(6))
	mock.ExpectCommit()

	review := &data.Review{ID: 42, TitleID: 7, UserID: 1, Text: "revised", Score: 4, Version: 1}
	err := repo.UpdateReview(review)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReviewClearsRatingWhenLastReviewGoes(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM reviews").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"title_id"}).AddRow(7))
	expectRatingRecompute(mock, 7, []int32{}, nil)
	mock.ExpectCommit()

	err := repo.DeleteReview(42)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewDuplicateRollsBack(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reviews").
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "reviews_title_id_user_id_key"`))
	mock.ExpectRollback()

	err := repo.CreateReview(&data.Review{TitleID: 7, UserID: 1, Text: "again", Score: 8})
	assert.ErrorIs(t, err, ErrDuplicateRecord)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewExistsForUser(t *testing.T) {
	t.Run("existing review", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery("SELECT id FROM reviews").
			WithArgs(int64(7), int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		exists, err := repo.ReviewExistsForUser(7, 1)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("no review", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery("SELECT id FROM reviews").
			WithArgs(int64(7), int64(1)).
			WillReturnError(sql.ErrNoRows)

		exists, err := repo.ReviewExistsForUser(7, 1)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("transient failure is an error, not an existing review", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery("SELECT id FROM reviews").
			WithArgs(int64(7), int64(1)).
			WillReturnError(context.DeadlineExceeded)

		exists, err := repo.ReviewExistsForUser(7, 1)
		assert.Error(t, err)
		assert.False(t, exists)
	})
}
