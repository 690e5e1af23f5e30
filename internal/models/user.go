package models

import "time"

type User struct {
	ID           string    `bson:"_id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	FullName     string    `bson:"full_name" json:"fullName"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	LastLoginAt  time.Time `bson:"last_login_at,omitempty" json:"lastLoginAt,omitempty"`
	Active       bool      `bson:"active" json:"active"`
}
