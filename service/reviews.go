package service

import (
	"errors"

	"github.com/emzola/recensio/data"
	"github.com/emzola/recensio/data/dto"
	"github.com/emzola/recensio/internal/validator"
	"github.com/emzola/recensio/repository"
)

type reviews interface {
	CreateReview(titleID int64, author *data.User, body dto.CreateReviewRequestBody) (*data.Review, error)
	GetReview(titleID int64, reviewID int64) (*data.Review, error)
	GetAllReviewsForTitle(titleID int64, qs dto.QsListReviews) ([]*data.Review, data.Metadata, error)
	UpdateReview(titleID int64, reviewID int64, body dto.UpdateReviewRequestBody) (*data.Review, error)
	DeleteReview(titleID int64, reviewID int64) error
}

// getReviewForTitle loads a review and checks it actually belongs to the
// title named in the URL, so /titles/1/reviews/9 cannot reach a review of
// title 2.
func (s *service) getReviewForTitle(titleID int64, reviewID int64) (*data.Review, error) {
	review, err := s.repo.GetReview(reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if review.TitleID != titleID {
		return nil, ErrRecordNotFound
	}
	return review, nil
}

// CreateReview creates a review on a title and recomputes the title's
// rating. A user gets one review per title: a second attempt surfaces
// ErrDuplicateRecord.
func (s *service) CreateReview(titleID int64, author *data.User, body dto.CreateReviewRequestBody) (*data.Review, error) {
	_, err := s.repo.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	review := &data.Review{
		TitleID: titleID,
		UserID:  author.ID,
		Author:  author.Username,
		Text:    body.Text,
		Score:   body.Score,
	}
	v := validator.New()
	if data.ValidateReview(v, review); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	exists, err := s.repo.ReviewExistsForUser(titleID, author.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRecord
	}
	err = s.repo.CreateReview(review)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return review, nil
}

// GetReview retrieves a review on a title.
func (s *service) GetReview(titleID int64, reviewID int64) (*data.Review, error) {
	return s.getReviewForTitle(titleID, reviewID)
}

// GetAllReviewsForTitle retrieves a paginated list of the reviews on a
// title, newest first.
func (s *service) GetAllReviewsForTitle(titleID int64, qs dto.QsListReviews) ([]*data.Review, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, qs.Filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	_, err := s.repo.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, data.Metadata{}, ErrRecordNotFound
		default:
			return nil, data.Metadata{}, err
		}
	}
	return s.repo.GetAllReviewsForTitle(titleID, qs.Filters)
}

// UpdateReview partially updates a review and recomputes the title's rating.
func (s *service) UpdateReview(titleID int64, reviewID int64, body dto.UpdateReviewRequestBody) (*data.Review, error) {
	review, err := s.getReviewForTitle(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if body.Text != nil {
		review.Text = *body.Text
	}
	if body.Score != nil {
		review.Score = *body.Score
	}
	v := validator.New()
	if data.ValidateReview(v, review); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateReview(review)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return review, nil
}

// DeleteReview deletes a review and recomputes the title's rating from the
// reviews that remain.
func (s *service) DeleteReview(titleID int64, reviewID int64) error {
	_, err := s.getReviewForTitle(titleID, reviewID)
	if err != nil {
		return err
	}
	err = s.repo.DeleteReview(reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}
