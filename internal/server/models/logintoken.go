package models

import "time"

// LoginToken is a single-use passwordless login token. Only a bcrypt hash of
// the secret half of the token is stored; the ID half locates the row.
type LoginToken struct {
	ID         string
	UserID     string
	SecretHash []byte
	Expires    time.Time
	Consumed   bool
}
