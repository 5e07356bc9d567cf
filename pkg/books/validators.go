package books

import (
	"time"
	"unicode/utf8"

	"github.com/readerapp/reader/pkg/errcodes"
	"github.com/readerapp/reader/pkg/models"
	"github.com/readerapp/reader/pkg/readingstate"
)

type CreateBookPayload struct {
	GoogleBookID string `json:"google_book_id" mod:"trim" validate:"required,max=64"`
}

const (
	MaxRating      = 5
	MaxNotesLength = 2000
)

// UpdateBookPayload carries the reading-progress fields a user may change.
// Nil fields are left alone. The clear flags reset a timestamp to unset.
type UpdateBookPayload struct {
	StartedReading       *time.Time `json:"started_reading,omitempty"`
	FinishedReading      *time.Time `json:"finished_reading,omitempty"`
	ClearStartedReading  bool       `json:"clear_started_reading,omitempty"`
	ClearFinishedReading bool       `json:"clear_finished_reading,omitempty"`
	Rating               *float64   `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Notes                *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type ListBooksResponse struct {
	Books []*models.Book `json:"books"`
	Total int            `json:"total"`
}

type ShelfResponse struct {
	DisplayName string         `json:"display_name"`
	InProgress  []*models.Book `json:"in_progress"`
	Added       []*models.Book `json:"added"`
}

type StatsResponse struct {
	DisplayName string `json:"display_name"`
	readingstate.Stats
}

// ApplyUpdate copies the payload onto book and returns the columns that
// changed. A book can't be finished before it was started.
func ApplyUpdate(book *models.Book, params UpdateBookPayload) ([]string, error) {
	columns := []string{}

	if params.Rating != nil && (*params.Rating < 0 || *params.Rating > MaxRating) {
		return nil, errcodes.ValidationError("rating must be between 0 and 5")
	}
	if params.Notes != nil && utf8.RuneCountInString(*params.Notes) > MaxNotesLength {
		return nil, errcodes.ValidationError("notes must be at most 2000 characters")
	}

	started := book.StartedReading
	finished := book.FinishedReading
	if params.ClearStartedReading {
		started = nil
	} else if params.StartedReading != nil {
		started = params.StartedReading
	}
	if params.ClearFinishedReading {
		finished = nil
	} else if params.FinishedReading != nil {
		finished = params.FinishedReading
	}

	if started != nil && finished != nil && finished.Before(*started) {
		return nil, errcodes.ValidationError("finished_reading can't be before started_reading")
	}

	if !sameTime(started, book.StartedReading) {
		book.StartedReading = started
		columns = append(columns, "started_reading")
	}
	if !sameTime(finished, book.FinishedReading) {
		book.FinishedReading = finished
		columns = append(columns, "finished_reading")
	}
	if params.Rating != nil && *params.Rating != book.Rating {
		book.Rating = *params.Rating
		columns = append(columns, "rating")
	}
	if params.Notes != nil && *params.Notes != book.Notes {
		book.Notes = *params.Notes
		columns = append(columns, "notes")
	}

	return columns, nil
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
