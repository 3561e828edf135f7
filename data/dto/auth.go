package dto

// SignupRequestBody defines a request body for the Signup service.
type SignupRequestBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ObtainTokenRequestBody defines a request body for the ObtainAccessToken service.
type ObtainTokenRequestBody struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}
