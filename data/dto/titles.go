package dto

import "github.com/emzola/kritika/data"

// CreateTitleRequestBody defines a request body for the CreateTitle service.
// Category and genres are referenced by slug.
type CreateTitleRequestBody struct {
	Name        string   `json:"name"`
	Year        int32    `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genres      []string `json:"genre"`
}

// UpdateTitleRequestBody defines a request body for the UpdateTitle service.
type UpdateTitleRequestBody struct {
	Name        *string  `json:"name"`
	Year        *int32   `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genre"`
}

// QsListTitles defines query strings for the ListTitles service.
type QsListTitles struct {
	Name     string
	Category string
	Genre    string
	Year     int
	Filters  data.Filters
}
