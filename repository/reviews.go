package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/recensio/data"
)

type reviews interface {
	CreateReview(review *data.Review) error
	GetReview(reviewID int64) (*data.Review, error)
	GetAllReviewsForTitle(titleID int64, filters data.Filters) ([]*data.Review, data.Metadata, error)
	UpdateReview(review *data.Review) error
	DeleteReview(reviewID int64) error
	ReviewExistsForUser(titleID int64, userID int64) (bool, error)
}

// CreateReview creates a review record and recomputes the owning title's
// rating in the same transaction, so no reader can observe the new review
// alongside a stale rating. The (title_id, user_id) unique constraint is the
// final word on duplicates: when two requests race, the loser surfaces
// ErrDuplicateRecord here no matter what the service pre-check saw.
func (r *repository) CreateReview(review *data.Review) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		INSERT INTO reviews (title_id, user_id, text, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, pub_date, version`
	args := []interface{}{review.TitleID, review.UserID, review.Text, review.Score}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&review.ID, &review.PubDate, &review.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "reviews_title_id_user_id_key"`:
			return ErrDuplicateRecord
		case err.Error() == `pq: insert or update on table "reviews" violates foreign key constraint "reviews_title_id_fkey"`:
			return ErrRecordNotFound
		default:
			return err
		}
	}
	err = recomputeTitleRating(ctx, tx, review.TitleID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// GetReview retrieves a review record along with its author's username.
func (r *repository) GetReview(reviewID int64) (*data.Review, error) {
	if reviewID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT reviews.id, reviews.title_id, reviews.user_id, users.username, reviews.text, reviews.score, reviews.pub_date, reviews.version
		FROM reviews
		INNER JOIN users ON reviews.user_id = users.id
		WHERE reviews.id = $1`
	var review data.Review
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, reviewID).Scan(
		&review.ID,
		&review.TitleID,
		&review.UserID,
		&review.Author,
		&review.Text,
		&review.Score,
		&review.PubDate,
		&review.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &review, nil
}

// GetAllReviewsForTitle retrieves a paginated list of the reviews for a
// title, newest first by default.
func (r *repository) GetAllReviewsForTitle(titleID int64, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), reviews.id, reviews.title_id, reviews.user_id, users.username, reviews.text, reviews.score, reviews.pub_date, reviews.version
		FROM reviews
		INNER JOIN users ON reviews.user_id = users.id
		WHERE reviews.title_id = $1
		ORDER BY %s %s, id DESC
		LIMIT $2 OFFSET $3`,
		filters.SortColumn(), filters.SortDirection())
	args := []interface{}{titleID, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	records := []*data.Review{}
	for rows.Next() {
		var review data.Review
		err := rows.Scan(
			&totalRecords,
			&review.ID,
			&review.TitleID,
			&review.UserID,
			&review.Author,
			&review.Text,
			&review.Score,
			&review.PubDate,
			&review.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		records = append(records, &review)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return records, metadata, nil
}

// UpdateReview updates a review record and recomputes the owning title's
// rating in the same transaction. Every update recomputes, whether or not
// the score changed: the recompute is a full re-read, so treating all
// updates the same is simpler and always correct.
func (r *repository) UpdateReview(review *data.Review) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		UPDATE reviews
		SET text = $1, score = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version`
	args := []interface{}{review.Text, review.Score, review.ID, review.Version}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&review.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	err = recomputeTitleRating(ctx, tx, review.TitleID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteReview deletes a review record and recomputes the owning title's
// rating from the remaining reviews, all in one transaction.
func (r *repository) DeleteReview(reviewID int64) error {
	if reviewID < 1 {
		return ErrRecordNotFound
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		DELETE FROM reviews
		WHERE id = $1
		RETURNING title_id`
	var titleID int64
	err = tx.QueryRowContext(ctx, query, reviewID).Scan(&titleID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	err = recomputeTitleRating(ctx, tx, titleID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// ReviewExistsForUser checks whether a user already has a review on a title.
// Only sql.ErrNoRows means absence; any other error is reported to the caller
// so a transient database failure never reads as an existing review.
func (r *repository) ReviewExistsForUser(titleID int64, userID int64) (bool, error) {
	query := `
		SELECT id
		FROM reviews
		WHERE title_id = $1 AND user_id = $2`
	var reviewID int64
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, titleID, userID).Scan(&reviewID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

// reviewedTitleIDs collects the distinct titles a user has reviewed. DeleteUser
// runs it before the cascading delete removes the rows it reads.
func reviewedTitleIDs(ctx context.Context, tx *sql.Tx, userID int64) ([]int64, error) {
	query := `
		SELECT DISTINCT title_id
		FROM reviews
		WHERE user_id = $1`
	rows, err := tx.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	titleIDs := []int64{}
	for rows.Next() {
		var titleID int64
		err := rows.Scan(&titleID)
		if err != nil {
			return nil, err
		}
		titleIDs = append(titleIDs, titleID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return titleIDs, nil
}

// recomputeTitleRating reads every score the title currently has and writes
// the derived rating back onto the title. The recompute is deliberately a
// full re-read rather than an increment, and it must run inside the same
// transaction as the review mutation that triggered it.
func recomputeTitleRating(ctx context.Context, tx *sql.Tx, titleID int64) error {
	query := `
		SELECT score
		FROM reviews
		WHERE title_id = $1`
	rows, err := tx.QueryContext(ctx, query, titleID)
	if err != nil {
		return err
	}
	defer rows.Close()
	scores := []int32{}
	for rows.Next() {
		var score int32
		err := rows.Scan(&score)
		if err != nil {
			return err
		}
		scores = append(scores, score)
	}
	if err = rows.Err(); err != nil {
		return err
	}
	rating := data.ComputeRating(scores)
	var value interface{}
	if rating != nil {
		value = *rating
	}
	_, err = tx.ExecContext(ctx, `UPDATE titles SET rating = $1 WHERE id = $2`, value, titleID)
	return err
}
