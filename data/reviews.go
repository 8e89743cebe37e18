package data

import (
	"fmt"
	"math"
	"time"

	"github.com/emzola/recensio/internal/validator"
)

// Review score bounds, inclusive.
const (
	MinScore = 1
	MaxScore = 10
)

// Review defines a user's review of a title. The author is serialized as a
// display name only, never as a nested user record.
type Review struct {
	ID      int64     `json:"id"`
	TitleID int64     `json:"title_id"`
	UserID  int64     `json:"-"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int32     `json:"score"`
	PubDate time.Time `json:"pub_date"`
	Version int32     `json:"-"`
}

func ValidateReview(v *validator.Validator, review *Review) {
	v.Check(review.Text != "", "text", "must be provided")
	v.Check(review.Score >= MinScore, "score", fmt.Sprintf("must be at least %d", MinScore))
	v.Check(review.Score <= MaxScore, "score", fmt.Sprintf("must not be greater than %d", MaxScore))
}

// ComputeRating derives a title's rating from the scores of its current
// reviews: the arithmetic mean rounded to the nearest integer, or nil when
// the title has no reviews. A title without reviews must never serialize its
// rating as 0, hence the nil.
func ComputeRating(scores []int32) *int32 {
	if len(scores) == 0 {
		return nil
	}
	sum := int64(0)
	for _, score := range scores {
		sum += int64(score)
	}
	rating := int32(math.Round(float64(sum) / float64(len(scores))))
	return &rating
}
