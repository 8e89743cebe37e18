package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/recensio/data"
)

type titles interface {
	CreateTitle(title *data.Title) error
	GetTitle(ID int64) (*data.Title, error)
	GetAllTitles(name string, year int, categorySlug string, genreSlug string, filters data.Filters) ([]*data.Title, data.Metadata, error)
	UpdateTitle(title *data.Title, replaceGenres bool) error
	DeleteTitle(ID int64) error
	GetOrCreateTitle(title *data.Title) error
}

// CreateTitle creates a title record along with its genre join rows. The
// insert and the joins run in one transaction so a half-written title is
// never visible.
func (r *repository) CreateTitle(title *data.Title) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		INSERT INTO titles (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, version`
	args := []interface{}{title.Name, title.Year, title.Description, categoryID(title)}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&title.ID, &title.Version)
	if err != nil {
		return err
	}
	err = insertTitleGenres(ctx, tx, title)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// GetTitle retrieves a title record, its optional category and its genres.
func (r *repository) GetTitle(ID int64) (*data.Title, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT titles.id, titles.name, titles.year, titles.description, titles.rating, titles.version,
			categories.id, categories.name, categories.slug
		FROM titles
		LEFT JOIN categories ON titles.category_id = categories.id
		WHERE titles.id = $1`
	var title data.Title
	var rating sql.NullInt32
	var catID sql.NullInt64
	var catName, catSlug sql.NullString
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, ID).Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&rating,
		&title.Version,
		&catID,
		&catName,
		&catSlug,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if rating.Valid {
		title.Rating = &rating.Int32
	}
	if catID.Valid {
		title.Category = &data.Category{ID: catID.Int64, Name: catName.String, Slug: catSlug.String}
	}
	genres, err := r.getGenresForTitle(title.ID)
	if err != nil {
		return nil, err
	}
	title.Genres = genres
	return &title, nil
}

// GetAllTitles retrieves a paginated list of title records. Records can be
// filtered by partial name match, year, category slug and genre slug.
func (r *repository) GetAllTitles(name string, year int, categorySlug string, genreSlug string, filters data.Filters) ([]*data.Title, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), titles.id, titles.name, titles.year, titles.description, titles.rating, titles.version,
			categories.id, categories.name, categories.slug
		FROM titles
		LEFT JOIN categories ON titles.category_id = categories.id
		WHERE (titles.name ILIKE '%%' || $1 || '%%' OR $1 = '')
		AND (titles.year = $2 OR $2 = 0)
		AND (categories.slug = $3 OR $3 = '')
		AND ($4 = '' OR EXISTS (
			SELECT 1 FROM titles_genres
			INNER JOIN genres ON titles_genres.genre_id = genres.id
			WHERE titles_genres.title_id = titles.id AND genres.slug = $4))
		ORDER BY %s %s, id ASC
		LIMIT $5 OFFSET $6`,
		filters.SortColumn(), filters.SortDirection())
	args := []interface{}{name, year, categorySlug, genreSlug, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	records := []*data.Title{}
	for rows.Next() {
		var title data.Title
		var rating sql.NullInt32
		var catID sql.NullInt64
		var catName, catSlug sql.NullString
		err := rows.Scan(
			&totalRecords,
			&title.ID,
			&title.Name,
			&title.Year,
			&title.Description,
			&rating,
			&title.Version,
			&catID,
			&catName,
			&catSlug,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		if rating.Valid {
			title.Rating = &rating.Int32
		}
		if catID.Valid {
			title.Category = &data.Category{ID: catID.Int64, Name: catName.String, Slug: catSlug.String}
		}
		records = append(records, &title)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	for _, title := range records {
		title.Genres, err = r.getGenresForTitle(title.ID)
		if err != nil {
			return nil, data.Metadata{}, err
		}
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return records, metadata, nil
}

// UpdateTitle updates a title record. The rating column is deliberately not
// part of the statement: only the review recompute path writes it. When
// replaceGenres is true the genre join rows are replaced with the title's
// current genre set in the same transaction.
func (r *repository) UpdateTitle(title *data.Title, replaceGenres bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		UPDATE titles
		SET name = $1, year = $2, description = $3, category_id = $4, version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version`
	args := []interface{}{title.Name, title.Year, title.Description, categoryID(title), title.ID, title.Version}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&title.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	if replaceGenres {
		_, err = tx.ExecContext(ctx, `DELETE FROM titles_genres WHERE title_id = $1`, title.ID)
		if err != nil {
			return err
		}
		err = insertTitleGenres(ctx, tx, title)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteTitle deletes a title record. Its reviews, their comments and the
// genre join rows are removed by the cascading foreign keys.
func (r *repository) DeleteTitle(ID int64) error {
	if ID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM titles
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

// GetOrCreateTitle looks a title up by name and year and fills in the given
// record, creating it when it does not exist. Used by the CSV import tool.
func (r *repository) GetOrCreateTitle(title *data.Title) error {
	query := `
		SELECT id, name, year, description, version
		FROM titles
		WHERE name = $1 AND year = $2`
	var existing data.Title
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, title.Name, title.Year).Scan(
		&existing.ID,
		&existing.Name,
		&existing.Year,
		&existing.Description,
		&existing.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return r.CreateTitle(title)
		default:
			return err
		}
	}
	existing.Category = title.Category
	existing.Genres = title.Genres
	*title = existing
	return nil
}

// getGenresForTitle retrieves the genres associated with a title record.
func (r *repository) getGenresForTitle(titleID int64) ([]data.Genre, error) {
	query := `
		SELECT genres.id, genres.name, genres.slug
		FROM genres
		INNER JOIN titles_genres ON titles_genres.genre_id = genres.id
		WHERE titles_genres.title_id = $1
		ORDER BY genres.id ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, titleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	genres := []data.Genre{}
	for rows.Next() {
		var genre data.Genre
		err := rows.Scan(
			&genre.ID,
			&genre.Name,
			&genre.Slug,
		)
		if err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}

// insertTitleGenres writes the genre join rows for a title inside tx.
func insertTitleGenres(ctx context.Context, tx *sql.Tx, title *data.Title) error {
	for _, genre := range title.Genres {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO titles_genres (title_id, genre_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, title.ID, genre.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

// categoryID extracts the nullable category reference for a title write.
func categoryID(title *data.Title) interface{} {
	if title.Category == nil {
		return nil
	}
	return title.Category.ID
}
