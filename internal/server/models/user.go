// Package models defines server-side data models persisted by the repositories.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	DisplayName  string    `bson:"display_name"`
	CreatedAt    time.Time `bson:"created_at"`
}
