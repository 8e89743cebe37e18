package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/recensio/data"
)

type comments interface {
	CreateComment(comment *data.Comment) error
	GetComment(commentID int64) (*data.Comment, error)
	GetAllCommentsForReview(reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error)
	UpdateComment(comment *data.Comment) error
	DeleteComment(commentID int64) error
}

// CreateComment creates a comment record for a review.
func (r *repository) CreateComment(comment *data.Comment) error {
	query := `
		INSERT INTO comments (review_id, user_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, pub_date, version`
	args := []interface{}{comment.ReviewID, comment.UserID, comment.Text}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&comment.ID, &comment.PubDate, &comment.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: insert or update on table "comments" violates foreign key constraint "comments_review_id_fkey"`:
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// GetComment retrieves a comment record along with its author's username.
func (r *repository) GetComment(commentID int64) (*data.Comment, error) {
	if commentID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT comments.id, comments.review_id, comments.user_id, users.username, comments.text, comments.pub_date, comments.version
		FROM comments
		INNER JOIN users ON comments.user_id = users.id
		WHERE comments.id = $1`
	var comment data.Comment
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, commentID).Scan(
		&comment.ID,
		&comment.ReviewID,
		&comment.UserID,
		&comment.Author,
		&comment.Text,
		&comment.PubDate,
		&comment.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &comment, nil
}

// GetAllCommentsForReview retrieves a paginated list of the comments on a
// review, newest first by default.
func (r *repository) GetAllCommentsForReview(reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), comments.id, comments.review_id, comments.user_id, users.username, comments.text, comments.pub_date, comments.version
		FROM comments
		INNER JOIN users ON comments.user_id = users.id
		WHERE comments.review_id = $1
		ORDER BY %s %s, id DESC
		LIMIT $2 OFFSET $3`,
		filters.SortColumn(), filters.SortDirection())
	args := []interface{}{reviewID, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	records := []*data.Comment{}
	for rows.Next() {
		var comment data.Comment
		err := rows.Scan(
			&totalRecords,
			&comment.ID,
			&comment.ReviewID,
			&comment.UserID,
			&comment.Author,
			&comment.Text,
			&comment.PubDate,
			&comment.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		records = append(records, &comment)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return records, metadata, nil
}

// UpdateComment updates a comment record.
func (r *repository) UpdateComment(comment *data.Comment) error {
	query := `
		UPDATE comments
		SET text = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version`
	args := []interface{}{comment.Text, comment.ID, comment.Version}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&comment.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteComment deletes a comment record.
func (r *repository) DeleteComment(commentID int64) error {
	if commentID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM comments
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
