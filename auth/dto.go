package auth

// AuthenticateRequest is the login payload.
type AuthenticateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
