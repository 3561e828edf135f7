package data

import (
	"time"

	"github.com/emzola/kritika/internal/validator"
)

// Comment is a remark left on a review. A user may leave any number of
// comments on the same review.
type Comment struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"review_id"`
	UserID    int64     `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"pub_date"`
	Version   int32     `json:"-"`
}

func ValidateComment(v *validator.Validator, comment *Comment) {
	v.Check(comment.Text != "", "text", "must be provided")
}
