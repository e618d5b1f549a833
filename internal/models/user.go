// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a user account in VibeHub.
//
// Verification and reset tokens are stored hashed (SHA-256 of the random
// token); the plaintext is only ever sent by mail. Deletes are hard deletes:
// soft-deleted engagement rows would collide with the per-user uniqueness
// constraints on re-like/re-save.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"unique;not null" json:"username"`
	Email     string `gorm:"unique;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FullName  string `json:"full_name"`
	Bio       string `json:"bio"`
	Avatar    string `json:"avatar"`
	CoverImg  string `json:"cover_img"`
	Private   bool   `gorm:"not null;default:false" json:"private"`

	IsVerified      bool       `gorm:"not null;default:false;index:idx_users_unverified" json:"is_verified"`
	VerifyTokenHash string     `json:"-"`
	VerifyExpiry    *time.Time `gorm:"index:idx_users_unverified" json:"-"`
	ResetTokenHash  string     `json:"-"`
	ResetExpiry     *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}
