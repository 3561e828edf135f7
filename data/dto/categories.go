package dto

// CreateCategoryRequestBody defines a request body for the CreateCategory service.
type CreateCategoryRequestBody struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateGenreRequestBody defines a request body for the CreateGenre service.
type CreateGenreRequestBody struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}
