package models

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

const unknownDisplayName = "N/A"

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int       `bun:",pk,nullzero" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `bun:",nullzero" json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash
	IsActive     bool      `json:"is_active"`
}

// DisplayName returns the part of the user's email before the "@", or "N/A"
// when no email is known.
func (u *User) DisplayName() string {
	if u == nil {
		return unknownDisplayName
	}
	return DisplayNameFromEmail(u.Email)
}

// DisplayNameFromEmail derives a short display name from an email address.
func DisplayNameFromEmail(email string) string {
	if email == "" {
		return unknownDisplayName
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}
