package service

import (
	"errors"

	"github.com/emzola/recensio/data"
	"github.com/emzola/recensio/data/dto"
	"github.com/emzola/recensio/internal/validator"
	"github.com/emzola/recensio/repository"
)

type comments interface {
	CreateComment(titleID int64, reviewID int64, author *data.User, body dto.CreateCommentRequestBody) (*data.Comment, error)
	GetComment(titleID int64, reviewID int64, commentID int64) (*data.Comment, error)
	GetAllCommentsForReview(titleID int64, reviewID int64, qs dto.QsListComments) ([]*data.Comment, data.Metadata, error)
	UpdateComment(titleID int64, reviewID int64, commentID int64, body dto.UpdateCommentRequestBody) (*data.Comment, error)
	DeleteComment(titleID int64, reviewID int64, commentID int64) error
}

// getCommentForReview loads a comment and checks the whole URL chain: the
// comment must belong to the review, and the review to the title.
func (s *service) getCommentForReview(titleID int64, reviewID int64, commentID int64) (*data.Comment, error) {
	_, err := s.getReviewForTitle(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	comment, err := s.repo.GetComment(commentID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if comment.ReviewID != reviewID {
		return nil, ErrRecordNotFound
	}
	return comment, nil
}

// CreateComment creates a comment on a review.
func (s *service) CreateComment(titleID int64, reviewID int64, author *data.User, body dto.CreateCommentRequestBody) (*data.Comment, error) {
	_, err := s.getReviewForTitle(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	comment := &data.Comment{
		ReviewID: reviewID,
		UserID:   author.ID,
		Author:   author.Username,
		Text:     body.Text,
	}
	v := validator.New()
	if data.ValidateComment(v, comment); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.CreateComment(comment)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return comment, nil
}

// GetComment retrieves a comment on a review.
func (s *service) GetComment(titleID int64, reviewID int64, commentID int64) (*data.Comment, error) {
	return s.getCommentForReview(titleID, reviewID, commentID)
}

// GetAllCommentsForReview retrieves a paginated list of the comments on a
// review, newest first.
func (s *service) GetAllCommentsForReview(titleID int64, reviewID int64, qs dto.QsListComments) ([]*data.Comment, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, qs.Filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	_, err := s.getReviewForTitle(titleID, reviewID)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return s.repo.GetAllCommentsForReview(reviewID, qs.Filters)
}

// UpdateComment partially updates a comment on a review.
func (s *service) UpdateComment(titleID int64, reviewID int64, commentID int64, body dto.UpdateCommentRequestBody) (*data.Comment, error) {
	comment, err := s.getCommentForReview(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if body.Text != nil {
		comment.Text = *body.Text
	}
	v := validator.New()
	if data.ValidateComment(v, comment); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateComment(comment)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return comment, nil
}

// DeleteComment deletes a comment on a review.
func (s *service) DeleteComment(titleID int64, reviewID int64, commentID int64) error {
	_, err := s.getCommentForReview(titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	err = s.repo.DeleteComment(commentID)
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
