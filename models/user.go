package models

import "time"

// User is an identity record. Password holds the bcrypt hash and is
// never serialized into responses.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
