// Package readingstate sorts a user's saved books into reading-progress
// buckets.
package readingstate

import "github.com/readerapp/reader/pkg/models"

// State is the reading-progress bucket of a single book.
type State string

const (
	StateUnread     State = "unread"
	StateInProgress State = "in_progress"
	StateFinished   State = "finished"
)

// StateOf derives a book's bucket from its two reading timestamps. A finish
// timestamp without a start still counts as finished.
func StateOf(book *models.Book) State {
	switch {
	case book.FinishedReading != nil:
		return StateFinished
	case book.StartedReading != nil:
		return StateInProgress
	default:
		return StateUnread
	}
}

// Buckets holds the books shown on the home screen.
type Buckets struct {
	InProgress []*models.Book `json:"in_progress"`
	Added      []*models.Book `json:"added"`
}

// Classify keeps only the books owned by userID and splits them into the
// in-progress and added (not yet started) buckets. Input order is preserved
// and finished books land in neither bucket.
func Classify(books []*models.Book, userID int) Buckets {
	buckets := Buckets{
		InProgress: []*models.Book{},
		Added:      []*models.Book{},
	}

	for _, book := range books {
		if !book.OwnedBy(userID) {
			continue
		}
		switch {
		case book.StartedReading != nil && book.FinishedReading == nil:
			buckets.InProgress = append(buckets.InProgress, book)
		case book.StartedReading == nil && book.FinishedReading == nil:
			buckets.Added = append(buckets.Added, book)
		}
	}

	return buckets
}

// Stats summarises a user's shelf for the stats screen.
type Stats struct {
	Total         int            `json:"total"`
	Unread        int            `json:"unread"`
	Reading       int            `json:"reading"`
	Finished      int            `json:"finished"`
	FinishedBooks []*models.Book `json:"finished_books"`
}

// Summarize counts the user's books per state and collects the finished ones
// in input order.
func Summarize(books []*models.Book, userID int) Stats {
	stats := Stats{FinishedBooks: []*models.Book{}}

	for _, book := range books {
		if !book.OwnedBy(userID) {
			continue
		}
		stats.Total++
		switch StateOf(book) {
		case StateUnread:
			stats.Unread++
		case StateInProgress:
			stats.Reading++
		case StateFinished:
			stats.Finished++
			stats.FinishedBooks = append(stats.FinishedBooks, book)
		}
	}

	return stats
}
