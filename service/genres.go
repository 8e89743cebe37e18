package service

import (
	"errors"

	"github.com/emzola/recensio/data"
	"github.com/emzola/recensio/data/dto"
	"github.com/emzola/recensio/internal/validator"
	"github.com/emzola/recensio/repository"
)

type genres interface {
	CreateGenre(body dto.CreateGenreRequestBody) (*data.Genre, error)
	GetAllGenres(qs dto.QsListCatalog) ([]*data.Genre, data.Metadata, error)
	DeleteGenre(slug string) error
}

// CreateGenre creates a genre record.
func (s *service) CreateGenre(body dto.CreateGenreRequestBody) (*data.Genre, error) {
	genre := &data.Genre{
		Name: body.Name,
		Slug: body.Slug,
	}
	v := validator.New()
	if data.ValidateGenre(v, genre); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateGenre(genre)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return genre, nil
}

// GetAllGenres retrieves a paginated list of genre records, optionally
// filtered by a name substring.
func (s *service) GetAllGenres(qs dto.QsListCatalog) ([]*data.Genre, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, qs.Filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	return s.repo.GetAllGenres(qs.Name, qs.Filters)
}

// DeleteGenre deletes a genre record by slug. The join rows linking titles
// to the genre cascade away with it.
func (s *service) DeleteGenre(slug string) error {
	genre, err := s.repo.GetGenreBySlug(slug)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	err = s.repo.DeleteGenre(genre.ID)
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
