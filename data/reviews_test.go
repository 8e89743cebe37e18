package data

import (
	"testing"

	"github.com/emzola/recensio/internal/validator"
	"github.com/stretchr/testify/assert"
)

func TestComputeRating(t *testing.T) {
	tests := []struct {
		name   string
		scores []int32
		want   *int32
	}{
		{"no reviews yields nil", nil, nil},
		{"empty slice yields nil", []int32{}, nil},
		{"single score", []int32{7}, ptr(7)},
		{"mean rounds up", []int32{8, 4, 5}, ptr(6)},
		{"mean rounds half up", []int32{8, 5}, ptr(7)},
		{"mean rounds down", []int32{6, 5, 5}, ptr(5)},
		{"all max", []int32{10, 10, 10}, ptr(10)},
		{"all min", []int32{1, 1}, ptr(1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeRating(tc.scores)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, *tc.want, *got)
			}
		})
	}
}

func ptr(n int32) *int32 {
	return &n
}

func TestValidateReview(t *testing.T) {
	tests := []struct {
		name   string
		review Review
		valid  bool
	}{
		{"valid review", Review{Text: "great", Score: 7}, true},
		{"score at lower bound", Review{Text: "meh", Score: 1}, true},
		{"score at upper bound", Review{Text: "superb", Score: 10}, true},
		{"score below bound", Review{Text: "bad", Score: 0}, false},
		{"score above bound", Review{Text: "over", Score: 11}, false},
		{"negative score", Review{Text: "broken", Score: -3}, false},
		{"missing text", Review{Score: 5}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := validator.New()
			ValidateReview(v, &tc.review)
			assert.Equal(t, tc.valid, v.Valid(), "errors: %v", v.Errors)
		})
	}
}
