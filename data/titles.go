package data

import (
	"time"

	"github.com/emzola/kritika/internal/validator"
)

// Title is a reviewable work. Rating is the mean of all review scores,
// computed on read; it is nil when the title has no reviews, never zero.
type Title struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Year        int32    `json:"year"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Genres      []Genre  `json:"genre"`
	Rating      *float64 `json:"rating"`
	Version     int32    `json:"-"`
}

func ValidateTitle(v *validator.Validator, title *Title) {
	v.Check(title.Name != "", "name", "must be provided")
	v.Check(len(title.Name) <= 250, "name", "must not be more than 250 bytes long")
	v.Check(title.Year != 0, "year", "must be provided")
	v.Check(title.Year >= 1, "year", "must be greater than zero")
	v.Check(title.Year <= int32(time.Now().Year()), "year", "must not be in the future")
	v.Check(len(title.Description) <= 1000, "description", "must not be more than 1000 bytes long")
	v.Check(title.Category.Slug != "", "category", "must be provided")
	slugs := make([]string, 0, len(title.Genres))
	for _, genre := range title.Genres {
		slugs = append(slugs, genre.Slug)
	}
	v.Check(validator.Unique(slugs), "genre", "must not contain duplicate values")
}
