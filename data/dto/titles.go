package dto

import "github.com/emzola/recensio/data"

// CreateTitleRequestBody defines a request body for the CreateTitle service.
// Category and genres are referenced by slug.
type CreateTitleRequestBody struct {
	Name        string   `json:"name"`
	Year        int32    `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genres      []string `json:"genres"`
}

// UpdateTitleRequestBody defines a request body for the UpdateTitle service.
type UpdateTitleRequestBody struct {
	Name        *string  `json:"name"`
	Year        *int32   `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genres"`
}

// QsListTitles defines the query strings used for listing titles.
type QsListTitles struct {
	Name     string
	Year     int
	Category string
	Genre    string
	Filters  data.Filters
}
