package service

import (
	"errors"

	"github.com/emzola/recensio/data"
	"github.com/emzola/recensio/data/dto"
	"github.com/emzola/recensio/internal/validator"
	"github.com/emzola/recensio/repository"
)

type users interface {
	CreateUser(body dto.CreateUserRequestBody) (*data.User, error)
	GetUser(username string) (*data.User, error)
	GetAllUsers(qs dto.QsListUsers) ([]*data.User, data.Metadata, error)
	UpdateUser(username string, body dto.UpdateUserRequestBody) (*data.User, error)
	DeleteUser(username string) error
	UpdateProfile(user *data.User, body dto.UpdateProfileRequestBody) (*data.User, error)
}

// CreateUser creates a user record on behalf of an administrator. Unlike
// Signup no confirmation code is issued; the user still has to go through
// signup before they can obtain a session token.
func (s *service) CreateUser(body dto.CreateUserRequestBody) (*data.User, error) {
	user := &data.User{
		Username:    body.Username,
		Email:       body.Email,
		Bio:         body.Bio,
		Role:        body.Role,
		IsSuperuser: body.IsSuperuser,
	}
	if user.Role == "" {
		user.Role = data.RoleUser
	}
	user.Normalize()
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return user, nil
}

// GetUser retrieves a user record by username.
func (s *service) GetUser(username string) (*data.User, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return user, nil
}

// GetAllUsers retrieves a paginated list of user records, optionally
// filtered by a username substring.
func (s *service) GetAllUsers(qs dto.QsListUsers) ([]*data.User, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, qs.Filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	return s.repo.GetAllUsers(qs.Username, qs.Filters)
}

// UpdateUser partially updates a user record. Rotating the role or the
// superuser flag goes back through Normalize so a superuser can never end up
// stored with a non-admin role.
func (s *service) UpdateUser(username string, body dto.UpdateUserRequestBody) (*data.User, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if body.Email != nil {
		user.Email = *body.Email
	}
	if body.Bio != nil {
		user.Bio = *body.Bio
	}
	if body.Role != nil {
		user.Role = *body.Role
	}
	if body.IsSuperuser != nil {
		user.IsSuperuser = *body.IsSuperuser
	}
	user.Normalize()
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return user, nil
}

// DeleteUser deletes a user record by username.
func (s *service) DeleteUser(username string) error {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	err = s.repo.DeleteUser(user.ID)
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

// UpdateProfile partially updates the authenticated user's own record. The
// request body has no role or superuser fields, so the caller's
// authorization tier cannot change through this path.
func (s *service) UpdateProfile(user *data.User, body dto.UpdateProfileRequestBody) (*data.User, error) {
	if body.Email != nil {
		user.Email = *body.Email
	}
	if body.Bio != nil {
		user.Bio = *body.Bio
	}
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.UpdateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return user, nil
}
