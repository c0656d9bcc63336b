package auth

// UserRequest is used by both register and login.
type UserRequest struct {
	Email    string `json:"email" binding:"required,email_strict"`
	Password string `json:"password" binding:"required,password"`
}

type LoginResponse struct {
	Detail      string `json:"detail"`
	AccessToken string `json:"access_token"`
}
