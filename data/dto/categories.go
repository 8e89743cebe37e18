package dto

import "github.com/emzola/recensio/data"

// CreateCategoryRequestBody defines a request body for the CreateCategory service.
type CreateCategoryRequestBody struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateGenreRequestBody defines a request body for the CreateGenre service.
type CreateGenreRequestBody struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// QsListCatalog defines the query strings shared by the category and genre
// list endpoints.
type QsListCatalog struct {
	Name    string
	Filters data.Filters
}
