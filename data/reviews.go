package data

import (
	"time"

	"github.com/emzola/kritika/internal/validator"
)

// Review is a user's single review of a title. The (author, title) pair is
// unique at the database level; score is an integer from 1 to 10 inclusive.
type Review struct {
	ID        int64     `json:"id"`
	TitleID   int64     `json:"title_id"`
	UserID    int64     `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int8      `json:"score"`
	CreatedAt time.Time `json:"pub_date"`
	Version   int32     `json:"-"`
}

func ValidateReview(v *validator.Validator, review *Review) {
	v.Check(review.Text != "", "text", "must be provided")
	v.Check(review.Score >= 1 && review.Score <= 10, "score", "score must be from 1 to 10")
}
