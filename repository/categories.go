package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/recensio/data"
)

type categories interface {
	CreateCategory(category *data.Category) error
	GetCategory(ID int64) (*data.Category, error)
	GetCategoryBySlug(slug string) (*data.Category, error)
	GetAllCategories(name string, filters data.Filters) ([]*data.Category, data.Metadata, error)
	UpdateCategory(category *data.Category) error
	DeleteCategory(ID int64) error
	GetOrCreateCategory(category *data.Category) error
}

// CreateCategory creates a category record.
func (r *repository) CreateCategory(category *data.Category) error {
	query := `
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		RETURNING id`
	args := []interface{}{category.Name, category.Slug}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&category.ID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "categories_slug_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetCategory retrieves a category record by its ID.
func (r *repository) GetCategory(ID int64) (*data.Category, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, name, slug
		FROM categories
		WHERE id = $1`
	return r.getCategory(query, ID)
}

// GetCategoryBySlug retrieves a category record by its unique slug.
func (r *repository) GetCategoryBySlug(slug string) (*data.Category, error) {
	query := `
		SELECT id, name, slug
		FROM categories
		WHERE slug = $1`
	return r.getCategory(query, slug)
}

func (r *repository) getCategory(query string, arg interface{}) (*data.Category, error) {
	var category data.Category
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &category, nil
}

// GetAllCategories retrieves a paginated list of category records, optionally
// filtered by a partial name match.
func (r *repository) GetAllCategories(name string, filters data.Filters) ([]*data.Category, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, name, slug
		FROM categories
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
	records := []*data.Category{}
	for rows.Next() {
		var category data.Category
		err := rows.Scan(
			&totalRecords,
			&category.ID,
			&category.Name,
			&category.Slug,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		records = append(records, &category)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return records, metadata, nil
}

// UpdateCategory updates a category record.
func (r *repository) UpdateCategory(category *data.Category) error {
	query := `
		UPDATE categories
		SET name = $1, slug = $2
		WHERE id = $3`
	args := []interface{}{category.Name, category.Slug, category.ID}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "categories_slug_key"`:
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

// DeleteCategory deletes a category record. Titles referencing the category
// keep existing: the foreign key nulls their category reference.
func (r *repository) DeleteCategory(ID int64) error {
	if ID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM categories
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

// GetOrCreateCategory looks a category up by slug and fills in the given
// record, creating it when it does not exist. Used by the CSV import tool.
func (r *repository) GetOrCreateCategory(category *data.Category) error {
	existing, err := r.GetCategoryBySlug(category.Slug)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return r.CreateCategory(category)
		default:
			return err
		}
	}
	*category = *existing
	return nil
}
