// Package users implements the credential store: persistence of user records
// with salted and peppered password digests, keyed by id and by username.
package users

// User is the durable user record. The store is the sole owner of the
// authoritative copy; other components receive value copies. PasswordDigest
// is never serialized outward.
type User struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	PasswordDigest string `json:"-"`
}
