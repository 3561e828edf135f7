package dto

import "github.com/emzola/kritika/data"

// CreateUserRequestBody defines a request body for the admin CreateUser service.
type CreateUserRequestBody struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// UpdateUserRequestBody defines a request body for the admin UpdateUser service.
type UpdateUserRequestBody struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// QsListUsers defines query strings for the ListUsers service.
type QsListUsers struct {
	Search  string
	Filters data.Filters
}
