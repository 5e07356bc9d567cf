package auth

// CredentialsPayload is the body of both the login and register requests.
type CredentialsPayload struct {
	Email    string `json:"email" mod:"trim,lcase" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// MeResponse describes the signed-in user.
type MeResponse struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}
