package service

import (
	"errors"

	"github.com/emzola/recensio/data"
	"github.com/emzola/recensio/data/dto"
	"github.com/emzola/recensio/internal/validator"
	"github.com/emzola/recensio/repository"
)

type categories interface {
	CreateCategory(body dto.CreateCategoryRequestBody) (*data.Category, error)
	GetAllCategories(qs dto.QsListCatalog) ([]*data.Category, data.Metadata, error)
	DeleteCategory(slug string) error
}

// CreateCategory creates a category record.
func (s *service) CreateCategory(body dto.CreateCategoryRequestBody) (*data.Category, error) {
	category := &data.Category{
		Name: body.Name,
		Slug: body.Slug,
	}
	v := validator.New()
	if data.ValidateCategory(v, category); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateCategory(category)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return category, nil
}

// GetAllCategories retrieves a paginated list of category records, optionally
// filtered by a name substring.
func (s *service) GetAllCategories(qs dto.QsListCatalog) ([]*data.Category, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, qs.Filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	return s.repo.GetAllCategories(qs.Name, qs.Filters)
}

// DeleteCategory deletes a category record by slug. Titles that referenced
// the category keep existing with no category.
func (s *service) DeleteCategory(slug string) error {
	category, err := s.repo.GetCategoryBySlug(slug)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	err = s.repo.DeleteCategory(category.ID)
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
