package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/recensio/data"
)

type users interface {
	CreateUser(user *data.User) error
	GetUserByID(ID int64) (*data.User, error)
	GetUserByUsername(username string) (*data.User, error)
	GetUserByEmail(email string) (*data.User, error)
	GetAllUsers(username string, filters data.Filters) ([]*data.User, data.Metadata, error)
	UpdateUser(user *data.User) error
	DeleteUser(ID int64) error
	GetOrCreateUser(user *data.User) error
}

// CreateUser creates a user record. The caller is expected to have run
// Normalize on the record so the superuser invariant holds at write time.
func (r *repository) CreateUser(user *data.User) error {
	query := `
		INSERT INTO users (username, email, bio, role, is_superuser, confirmation_code_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version`
	args := []interface{}{user.Username, user.Email, user.Bio, user.Role, user.IsSuperuser, user.ConfirmationCodeHash}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Version,
	)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "users_username_key"`:
			return ErrDuplicateRecord
		case err.Error() == `pq: duplicate key value violates unique constraint "users_email_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetUserByID retrieves a user record by its ID.
func (r *repository) GetUserByID(ID int64) (*data.User, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, username, email, bio, role, is_superuser, confirmation_code_hash, version
		FROM users
		WHERE id = $1`
	return r.getUser(query, ID)
}

// GetUserByUsername retrieves a user record by its unique username.
func (r *repository) GetUserByUsername(username string) (*data.User, error) {
	query := `
		SELECT id, created_at, username, email, bio, role, is_superuser, confirmation_code_hash, version
		FROM users
		WHERE username = $1`
	return r.getUser(query, username)
}

// GetUserByEmail retrieves a user record by its unique email.
func (r *repository) GetUserByEmail(email string) (*data.User, error) {
	query := `
		SELECT id, created_at, username, email, bio, role, is_superuser, confirmation_code_hash, version
		FROM users
		WHERE email = $1`
	return r.getUser(query, email)
}

func (r *repository) getUser(query string, arg interface{}) (*data.User, error) {
	var user data.User
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Username,
		&user.Email,
		&user.Bio,
		&user.Role,
		&user.IsSuperuser,
		&user.ConfirmationCodeHash,
		&user.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

// GetAllUsers retrieves a paginated list of user records, optionally filtered
// by a partial username match.
func (r *repository) GetAllUsers(username string, filters data.Filters) ([]*data.User, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, created_at, username, email, bio, role, is_superuser, version
		FROM users
		WHERE (username ILIKE '%%' || $1 || '%%' OR $1 = '')
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`,
		filters.SortColumn(), filters.SortDirection())
	args := []interface{}{username, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	records := []*data.User{}
	for rows.Next() {
		var user data.User
		err := rows.Scan(
			&totalRecords,
			&user.ID,
			&user.CreatedAt,
			&user.Username,
			&user.Email,
			&user.Bio,
			&user.Role,
			&user.IsSuperuser,
			&user.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		records = append(records, &user)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return records, metadata, nil
}

// UpdateUser updates a user record, including confirmation code rotation.
func (r *repository) UpdateUser(user *data.User) error {
	query := `
		UPDATE users
		SET email = $1, bio = $2, role = $3, is_superuser = $4, confirmation_code_hash = $5, version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version`
	args := []interface{}{
		user.Email,
		user.Bio,
		user.Role,
		user.IsSuperuser,
		user.ConfirmationCodeHash,
		user.ID,
		user.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "users_email_key"`:
			return ErrDuplicateRecord
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteUser deletes a user record. Reviews and comments authored by the
// user are removed by the cascading foreign keys, so the titles the user had
// reviewed are collected up front and their ratings recomputed from the
// remaining reviews, all in the same transaction as the delete.
func (r *repository) DeleteUser(ID int64) error {
	if ID < 1 {
		return ErrRecordNotFound
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	titleIDs, err := reviewedTitleIDs(ctx, tx, ID)
	if err != nil {
		return err
	}
	query := `
		DELETE FROM users
		WHERE id = $1`
	result, err := tx.ExecContext(ctx, query, ID)
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
	for _, titleID := range titleIDs {
		err = recomputeTitleRating(ctx, tx, titleID)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetOrCreateUser looks a user up by username and fills in the given record,
// creating it when it does not exist. Used by the signup flow and the CSV
// import tool.
func (r *repository) GetOrCreateUser(user *data.User) error {
	existing, err := r.GetUserByUsername(user.Username)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return r.CreateUser(user)
		default:
			return err
		}
	}
	*user = *existing
	return nil
}
