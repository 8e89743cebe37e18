package data

import "github.com/emzola/recensio/internal/validator"

// Genre defines a title genre (e.g. "Drama", "Rock").
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func ValidateGenre(v *validator.Validator, genre *Genre) {
	v.Check(genre.Name != "", "name", "must be provided")
	v.Check(len(genre.Name) <= 256, "name", "must not be more than 256 bytes long")
	ValidateSlug(v, genre.Slug)
}
