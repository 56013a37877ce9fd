package domain

import "time"

// User is an identity record. Credentials are issued and checked by the
// external identity provider; this service only stores the hash so the seed
// tooling and the provider agree on one record shape.
type User struct {
	ID            string
	Name          string
	Email         string
	EmailVerified bool
	PasswordHash  string // argon2id PHC encoded
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
