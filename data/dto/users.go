package dto

import "github.com/emzola/recensio/data"

// SignupRequestBody defines a request body for the Signup service.
type SignupRequestBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ExchangeTokenRequestBody defines a request body for the ExchangeToken service.
type ExchangeTokenRequestBody struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

// CreateUserRequestBody defines a request body for the CreateUser service.
type CreateUserRequestBody struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
	Role        string `json:"role"`
	IsSuperuser bool   `json:"is_superuser"`
}

// UpdateUserRequestBody defines a request body for the UpdateUser service.
type UpdateUserRequestBody struct {
	Email       *string `json:"email"`
	Bio         *string `json:"bio"`
	Role        *string `json:"role"`
	IsSuperuser *bool   `json:"is_superuser"`
}

// UpdateProfileRequestBody defines a request body for the UpdateProfile
// service. Role and superuser flags are deliberately absent: the "me"
// endpoint never changes authorization tier.
type UpdateProfileRequestBody struct {
	Email *string `json:"email"`
	Bio   *string `json:"bio"`
}

// QsListUsers defines the query strings used for listing users.
type QsListUsers struct {
	Username string
	Filters  data.Filters
}
