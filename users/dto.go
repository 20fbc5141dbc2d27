package users

// CredentialInput is the caller-supplied payload for create and update. The
// plaintext password is transient: it passes once through the hasher and is
// never persisted.
type CredentialInput struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// TokenResponse carries the bearer token minted on successful create or
// login.
type TokenResponse struct {
	Token string `json:"token"`
}
