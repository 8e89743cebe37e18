package service

import (
	"errors"

	"github.com/emzola/recensio/data"
	"github.com/emzola/recensio/data/dto"
	"github.com/emzola/recensio/internal/validator"
	"github.com/emzola/recensio/repository"
)

type titles interface {
	CreateTitle(body dto.CreateTitleRequestBody) (*data.Title, error)
	GetTitle(titleID int64) (*data.Title, error)
	GetAllTitles(qs dto.QsListTitles) ([]*data.Title, data.Metadata, error)
	UpdateTitle(titleID int64, body dto.UpdateTitleRequestBody) (*data.Title, error)
	DeleteTitle(titleID int64) error
}

// resolveCategory maps a category slug from a request body to its record.
// An unknown slug is a validation failure, not a 404: the title being
// written is the resource here, the slug is just a field on it.
func (s *service) resolveCategory(v *validator.Validator, slug string) *data.Category {
	category, err := s.repo.GetCategoryBySlug(slug)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("category", "must be an existing category slug")
		default:
			v.AddError("category", "could not be resolved")
		}
		return nil
	}
	return category
}

// resolveGenres maps genre slugs from a request body to their records.
func (s *service) resolveGenres(v *validator.Validator, slugs []string) []data.Genre {
	resolved := make([]data.Genre, 0, len(slugs))
	for _, slug := range slugs {
		genre, err := s.repo.GetGenreBySlug(slug)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrRecordNotFound):
				v.AddError("genres", "must contain only existing genre slugs")
			default:
				v.AddError("genres", "could not be resolved")
			}
			return nil
		}
		resolved = append(resolved, *genre)
	}
	return resolved
}

// CreateTitle creates a title record. The rating of a new title is always
// null since it has no reviews yet.
func (s *service) CreateTitle(body dto.CreateTitleRequestBody) (*data.Title, error) {
	title := &data.Title{
		Name:        body.Name,
		Year:        body.Year,
		Description: body.Description,
	}
	v := validator.New()
	data.ValidateTitle(v, title)
	data.ValidateGenreSlugs(v, body.Genres)
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	if body.Category != "" {
		title.Category = s.resolveCategory(v, body.Category)
	}
	title.Genres = s.resolveGenres(v, body.Genres)
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateTitle(title)
	if err != nil {
		return nil, err
	}
	return title, nil
}

// GetTitle retrieves a title record along with its category, genres and
// current rating.
func (s *service) GetTitle(titleID int64) (*data.Title, error) {
	title, err := s.repo.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return title, nil
}

// GetAllTitles retrieves a paginated list of title records. Name matches a
// substring; year, category and genre match exactly.
func (s *service) GetAllTitles(qs dto.QsListTitles) ([]*data.Title, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, qs.Filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	return s.repo.GetAllTitles(qs.Name, qs.Year, qs.Category, qs.Genre, qs.Filters)
}

// UpdateTitle partially updates a title record. The genre set is only
// replaced when the request body carries a genres key; the rating never
// changes through this path.
func (s *service) UpdateTitle(titleID int64, body dto.UpdateTitleRequestBody) (*data.Title, error) {
	title, err := s.repo.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if body.Name != nil {
		title.Name = *body.Name
	}
	if body.Year != nil {
		title.Year = *body.Year
	}
	if body.Description != nil {
		title.Description = *body.Description
	}
	v := validator.New()
	data.ValidateTitle(v, title)
	if body.Genres != nil {
		data.ValidateGenreSlugs(v, body.Genres)
	}
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	if body.Category != nil {
		if *body.Category == "" {
			title.Category = nil
		} else {
			title.Category = s.resolveCategory(v, *body.Category)
		}
	}
	replaceGenres := body.Genres != nil
	if replaceGenres {
		title.Genres = s.resolveGenres(v, body.Genres)
	}
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateTitle(title, replaceGenres)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return title, nil
}

// DeleteTitle deletes a title record. Its reviews and their comments cascade
// away with it.
func (s *service) DeleteTitle(titleID int64) error {
	err := s.repo.DeleteTitle(titleID)
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
