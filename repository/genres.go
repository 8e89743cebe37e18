package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/recensio/data"
)

type genres interface {
	CreateGenre(genre *data.Genre) error
	GetGenre(ID int64) (*data.Genre, error)
	GetGenreBySlug(slug string) (*data.Genre, error)
	GetAllGenres(name string, filters data.Filters) ([]*data.Genre, data.Metadata, error)
	UpdateGenre(genre *data.Genre) error
	DeleteGenre(ID int64) error
	GetOrCreateGenre(genre *data.Genre) error
}

// CreateGenre creates a genre record.
func (r *repository) CreateGenre(genre *data.Genre) error {
	query := `
		INSERT INTO genres (name, slug)
		VALUES ($1, $2)
		RETURNING id`
	args := []interface{}{genre.Name, genre.Slug}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&genre.ID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "genres_slug_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetGenre retrieves a genre record by its ID.
func (r *repository) GetGenre(ID int64) (*data.Genre, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, name, slug
		FROM genres
		WHERE id = $1`
	return r.getGenre(query, ID)
}

// GetGenreBySlug retrieves a genre record by its unique slug.
func (r *repository) GetGenreBySlug(slug string) (*data.Genre, error) {
	query := `
		SELECT id, name, slug
		FROM genres
		WHERE slug = $1`
	return r.getGenre(query, slug)
}

func (r *repository) getGenre(query string, arg interface{}) (*data.Genre, error) {
	var genre data.Genre
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&genre.ID,
		&genre.Name,
		&genre.Slug,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &genre, nil
}

// GetAllGenres retrieves a paginated list of genre records, optionally
// filtered by a partial name match.
func (r *repository) GetAllGenres(name string, filters data.Filters) ([]*data.Genre, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, name, slug
		FROM genres
		WHERE (name ILIKE '%%' || $1 || '%%' OR $1 = '')
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`,
		filters.SortColumn(), filters.SortDirection())
	args := []interface{}{name, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	records := []*data.Genre{}
	for rows.Next() {
		var genre data.Genre
		err := rows.Scan(
			&totalRecords,
			&genre.ID,
			&genre.Name,
			&genre.Slug,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		records = append(records, &genre)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return records, metadata, nil
}

// UpdateGenre updates a genre record.
func (r *repository) UpdateGenre(genre *data.Genre) error {
	query := `
		UPDATE genres
		SET name = $1, slug = $2
		WHERE id = $3`
	args := []interface{}{genre.Name, genre.Slug, genre.ID}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "genres_slug_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
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

// DeleteGenre deletes a genre record and its join rows.
func (r *repository) DeleteGenre(ID int64) error {
	if ID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM genres
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, ID)
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

// GetOrCreateGenre looks a genre up by slug and fills in the given record,
// creating it when it does not exist. Used by the CSV import tool.
func (r *repository) GetOrCreateGenre(genre *data.Genre) error {
	existing, err := r.GetGenreBySlug(genre.Slug)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return r.CreateGenre(genre)
		default:
			return err
		}
	}
	*genre = *existing
	return nil
}
