package models

import "time"

// User is an account row. PasswordHash and Token never leave the server:
// Token holds the serialized JWT issued by the most recent login, empty
// until the first login. Exactly one token is live per account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Token        string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
