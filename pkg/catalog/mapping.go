package catalog

import (
	"strconv"
	"strings"

	"github.com/readerapp/reader/pkg/htmlutil"
	"github.com/readerapp/reader/pkg/models"
)

// ToBook maps a catalog volume onto a new, unsaved book owned by userID.
// The volume must carry an id and a title. Everything else is optional and
// left nil when absent. The returned book has no id until it is persisted.
func ToBook(v *Volume, userID int) (*models.Book, error) {
	if v == nil || strings.TrimSpace(v.ID) == "" {
		return nil, &MissingFieldError{Field: "id"}
	}
	if strings.TrimSpace(v.Title) == "" {
		return nil, &MissingFieldError{Field: "title"}
	}

	book := &models.Book{
		UserID:       userID,
		GoogleBookID: optional(v.ID),
		Title:        optional(strings.TrimSpace(v.Title)),
		Authors:      optional(strings.Join(v.Authors, ", ")),
		Description:  optional(htmlutil.PlainText(v.Description)),
		Categories:   optional(strings.Join(v.Categories, ", ")),
		PhotoURL:     optional(v.Thumbnail),
	}
	if v.PageCount > 0 {
		book.PageCount = optional(strconv.Itoa(v.PageCount))
	}
	return book, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
