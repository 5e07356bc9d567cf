package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Book is a catalog entry a user has saved to their shelf, together with their
// reading progress.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID              string     `bun:",pk,nullzero" json:"id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	UserID          int        `bun:",notnull" json:"user_id"`
	GoogleBookID    *string    `json:"google_book_id,omitempty"`
	Title           *string    `json:"title,omitempty"`
	Authors         *string    `json:"authors,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Categories      *string    `json:"categories,omitempty"`
	PhotoURL        *string    `bun:"photo_url" json:"photo_url,omitempty"`
	PageCount       *string    `json:"page_count,omitempty"`
	StartedReading  *time.Time `json:"started_reading,omitempty"`
	FinishedReading *time.Time `json:"finished_reading,omitempty"`
	Rating          float64    `bun:",notnull" json:"rating"`
	Notes           string     `bun:",notnull" json:"notes"`
}

// OwnedBy reports whether the book belongs to the given user.
func (b *Book) OwnedBy(userID int) bool {
	return b != nil && b.UserID == userID
}
