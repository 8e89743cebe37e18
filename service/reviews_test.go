package service

import (
	"errors"
	"testing"

	"github.com/emzola/recensio/data"
	"github.com/emzola/recensio/data/dto"
	"github.com/emzola/recensio/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview(t *testing.T) {
	alice := &data.User{ID: 1, Username: "alice", Role: data.RoleUser}
	solaris := &data.Title{ID: 7, Name: "Solaris", Year: 1961}

	t.Run("creates a review and stamps the author", func(t *testing.T) {
		var created *data.Review
		repo := &stubRepo{
			getTitle: func(ID int64) (*data.Title, error) {
				return solaris, nil
			},
			reviewExistsForUser: func(titleID, userID int64) (bool, error) {
				return false, nil
			},
			createReview: func(review *data.Review) error {
				review.ID = 42
				created = review
				return nil
			},
		}
		svc, _ := newTestService(t, repo)
		review, err := svc.CreateReview(7, alice, dto.CreateReviewRequestBody{Text: "haunting", Score: 9})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, int64(42), review.ID)
		assert.Equal(t, int64(7), review.TitleID)
		assert.Equal(t, alice.ID, review.UserID)
		assert.Equal(t, "alice", review.Author)
	})

	t.Run("unknown title is not found", func(t *testing.T) {
		repo := &stubRepo{
			getTitle: func(ID int64) (*data.Title, error) {
				return nil, repository.ErrRecordNotFound
			},
		}
		svc, _ := newTestService(t, repo)
		_, err := svc.CreateReview(999, alice, dto.CreateReviewRequestBody{Text: "x", Score: 5})
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("out-of-bounds score fails validation", func(t *testing.T) {
		repo := &stubRepo{
			getTitle: func(ID int64) (*data.Title, error) {
				return solaris, nil
			},
		}
		svc, _ := newTestService(t, repo)
		_, err := svc.CreateReview(7, alice, dto.CreateReviewRequestBody{Text: "x", Score: 11})
		assert.ErrorIs(t, err, ErrFailedValidation)
		_, err = svc.CreateReview(7, alice, dto.CreateReviewRequestBody{Text: "x", Score: 0})
		assert.ErrorIs(t, err, ErrFailedValidation)
	})

	t.Run("second review by the same user is a duplicate", func(t *testing.T) {
		repo := &stubRepo{
			getTitle: func(ID int64) (*data.Title, error) {
				return solaris, nil
			},
			reviewExistsForUser: func(titleID, userID int64) (bool, error) {
				return true, nil
			},
		}
		svc, _ := newTestService(t, repo)
		_, err := svc.CreateReview(7, alice, dto.CreateReviewRequestBody{Text: "again", Score: 8})
		assert.ErrorIs(t, err, ErrDuplicateRecord)
	})

	t.Run("constraint race still surfaces a duplicate", func(t *testing.T) {
		repo := &stubRepo{
			getTitle: func(ID int64) (*data.Title, error) {
				return solaris, nil
			},
			reviewExistsForUser: func(titleID, userID int64) (bool, error) {
				return false, nil
			},
			createReview: func(review *data.Review) error {
				return repository.ErrDuplicateRecord
			},
		}
		svc, _ := newTestService(t, repo)
		_, err := svc.CreateReview(7, alice, dto.CreateReviewRequestBody{Text: "race", Score: 8})
		assert.ErrorIs(t, err, ErrDuplicateRecord)
	})

	t.Run("failed duplicate check is not a duplicate", func(t *testing.T) {
		dbErr := errors.New("pq: canceling statement due to user request")
		repo := &stubRepo{
			getTitle: func(ID int64) (*data.Title, error) {
				return solaris, nil
			},
			reviewExistsForUser: func(titleID, userID int64) (bool, error) {
				return false, dbErr
			},
		}
		svc, _ := newTestService(t, repo)
		_, err := svc.CreateReview(7, alice, dto.CreateReviewRequestBody{Text: "x", Score: 8})
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrDuplicateRecord)
	})
}

func TestGetReviewChecksTitleOwnership(t *testing.T) {
	repo := &stubRepo{
		getReview: func(reviewID int64) (*data.Review, error) {
			return &data.Review{ID: 42, TitleID: 7, UserID: 1, Author: "alice", Text: "x", Score: 9}, nil
		},
	}
	svc, _ := newTestService(t, repo)

	review, err := svc.GetReview(7, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), review.ID)

	// The same review requested through a different title's URL is invisible.
	_, err = svc.GetReview(8, 42)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUpdateReview(t *testing.T) {
	t.Run("partial update keeps unset fields", func(t *testing.T) {
		var updated *data.Review
		repo := &stubRepo{
			getReview: func(reviewID int64) (*data.Review, error) {
				return &data.Review{ID: 42, TitleID: 7, UserID: 1, Author: "alice", Text: "original", Score: 9}, nil
			},
			updateReview: func(review *data.Review) error {
				updated = review
				return nil
			},
		}
		svc, _ := newTestService(t, repo)
		score := int32(4)
		review, err := svc.UpdateReview(7, 42, dto.UpdateReviewRequestBody{Score: &score})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, int32(4), review.Score)
		assert.Equal(t, "original", review.Text)
	})

	t.Run("edit conflict propagates", func(t *testing.T) {
		repo := &stubRepo{
			getReview: func(reviewID int64) (*data.Review, error) {
				return &data.Review{ID: 42, TitleID: 7, UserID: 1, Author: "alice", Text: "x", Score: 9}, nil
			},
			updateReview: func(review *data.Review) error {
				return repository.ErrEditConflict
			},
		}
		svc, _ := newTestService(t, repo)
		text := "revised"
		_, err := svc.UpdateReview(7, 42, dto.UpdateReviewRequestBody{Text: &text})
		assert.ErrorIs(t, err, ErrEditConflict)
	})
}
