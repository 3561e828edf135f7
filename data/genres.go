package data

import "github.com/emzola/kritika/internal/validator"

// Genre tags a title. A title may carry any number of genres; deleting a genre
// detaches it from titles without touching them.
type Genre struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func ValidateGenre(v *validator.Validator, genre *Genre) {
	v.Check(genre.Name != "", "name", "must be provided")
	v.Check(len(genre.Name) <= 50, "name", "must not be more than 50 bytes long")
	ValidateSlug(v, genre.Slug)
}
