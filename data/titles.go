package data

import (
	"time"

	"github.com/emzola/recensio/internal/validator"
)

// Title defines a cataloged work that users review. The Rating field is
// derived from the title's review scores and is never written directly:
// only the review repository's recompute path updates it. A nil rating
// means the title has no reviews yet and serializes as null, which keeps
// it distinguishable from any real score.
type Title struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Year        int32     `json:"year"`
	Description string    `json:"description,omitempty"`
	Category    *Category `json:"category"`
	Genres      []Genre   `json:"genres"`
	Rating      *int32    `json:"rating"`
	Version     int32     `json:"-"`
}

func ValidateTitle(v *validator.Validator, title *Title) {
	v.Check(title.Name != "", "name", "must be provided")
	v.Check(len(title.Name) <= 256, "name", "must not be more than 256 bytes long")
	v.Check(title.Year != 0, "year", "must be provided")
	v.Check(title.Year <= int32(time.Now().Year()), "year", "must not be in the future")
}

// ValidateGenreSlugs checks the genre slug list supplied on title writes.
func ValidateGenreSlugs(v *validator.Validator, slugs []string) {
	v.Check(validator.Unique(slugs), "genres", "must not contain duplicate values")
	for _, slug := range slugs {
		ValidateSlug(v, slug)
	}
}
