package data

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/emzola/recensio/internal/validator"
	"github.com/stretchr/testify/assert"
)

func TestValidateTitle(t *testing.T) {
	currentYear := int32(time.Now().Year())
	tests := []struct {
		name  string
		title Title
		valid bool
	}{
		{"valid title", Title{Name: "Solaris", Year: 1961}, true},
		{"current year", Title{Name: "New Release", Year: currentYear}, true},
		{"future year", Title{Name: "Unreleased", Year: currentYear + 1}, false},
		{"missing name", Title{Year: 2000}, false},
		{"missing year", Title{Name: "Undated"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := validator.New()
			ValidateTitle(v, &tc.title)
			assert.Equal(t, tc.valid, v.Valid(), "errors: %v", v.Errors)
		})
	}
}

func TestValidateGenreSlugs(t *testing.T) {
	v := validator.New()
	ValidateGenreSlugs(v, []string{"drama", "sci-fi"})
	assert.True(t, v.Valid(), "errors: %v", v.Errors)

	v = validator.New()
	ValidateGenreSlugs(v, []string{"drama", "drama"})
	assert.False(t, v.Valid())

	v = validator.New()
	ValidateGenreSlugs(v, []string{"bad slug!"})
	assert.False(t, v.Valid())
}

// A title with no reviews must serialize rating as JSON null, never 0.
func TestTitleRatingSerializesAsNull(t *testing.T) {
	title := Title{ID: 1, Name: "Solaris", Year: 1961}
	js, err := json.Marshal(title)
	assert.NoError(t, err)
	assert.Contains(t, string(js), `"rating":null`)

	rating := int32(6)
	title.Rating = &rating
	js, err = json.Marshal(title)
	assert.NoError(t, err)
	assert.Contains(t, string(js), `"rating":6`)
}
