package data

import "github.com/emzola/kritika/internal/validator"

// DefaultCategorySlug identifies the seeded fallback category that titles
// are reassigned to when their category is deleted.
const DefaultCategorySlug = "uncategorized"

// Category groups titles by kind (books, films, music). Deleting a category
// never deletes its titles; they fall back to the default category.
type Category struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func ValidateCategory(v *validator.Validator, category *Category) {
	v.Check(category.Name != "", "name", "must be provided")
	v.Check(len(category.Name) <= 100, "name", "must not be more than 100 bytes long")
	ValidateSlug(v, category.Slug)
}

func ValidateSlug(v *validator.Validator, slug string) {
	v.Check(slug != "", "slug", "must be provided")
	v.Check(len(slug) <= 50, "slug", "must not be more than 50 bytes long")
	v.Check(validator.Matches(slug, validator.SlugRX), "slug", "must contain only lowercase letters, digits and hyphens")
}
