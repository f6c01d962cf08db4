package models

// RegisterRequest is the body for account registration. Profiles are a
// separate step; registration only creates credentials.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse is returned after registration or login.
type AccountResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
