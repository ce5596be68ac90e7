package model

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxTitleLength  = 200
	MaxAuthorLength = 100
	ISBNLength      = 13
	MaxTotalCopies  = math.MaxInt32
)

var isbnPattern = regexp.MustCompile(`^[0-9]{13}$`)

// =====================================================
// ADD BOOK
// =====================================================

type AddBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	TotalCopies int    `json:"total_copies"`
}

// Normalize trims surrounding whitespace from the text fields.
func (r *AddBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.ISBN = strings.TrimSpace(r.ISBN)
}

// Validate checks fields in catalog order and reports the first problem only,
// so staff get one actionable message at a time.
func (r AddBookRequest) Validate() error {
	checks := []struct {
		value interface{}
		rules []validation.Rule
	}{
		{r.Title, []validation.Rule{
			validation.Required.Error("Title is required."),
			validation.RuneLength(1, MaxTitleLength).Error(fmt.Sprintf("Title must be between 1 and %d characters.", MaxTitleLength)),
		}},
		{r.Author, []validation.Rule{
			validation.Required.Error("Author is required."),
			validation.RuneLength(1, MaxAuthorLength).Error(fmt.Sprintf("Author must be between 1 and %d characters.", MaxAuthorLength)),
		}},
		{r.ISBN, []validation.Rule{
			validation.Required.Error("ISBN must be exactly 13 digits."),
			validation.Match(isbnPattern).Error("ISBN must be exactly 13 digits."),
		}},
		{r.TotalCopies, []validation.Rule{
			validation.Required.Error("Total copies must be a positive integer between 1 and 2,147,483,647."),
			validation.Min(1).Error("Total copies must be a positive integer between 1 and 2,147,483,647."),
			validation.Max(MaxTotalCopies).Error("Total copies must be a positive integer between 1 and 2,147,483,647."),
		}},
	}

	for _, check := range checks {
		if err := validation.Validate(check.value, check.rules...); err != nil {
			return err
		}
	}
	return nil
}

// IsValidISBN reports whether s is exactly 13 ASCII digits.
func IsValidISBN(s string) bool {
	return isbnPattern.MatchString(s)
}

// =====================================================
// SEARCH
// =====================================================

const (
	SearchByTitle  = "title"
	SearchByAuthor = "author"
	SearchByISBN   = "isbn"
)

type SearchBooksRequest struct {
	Query string `form:"q"`
	Type  string `form:"type"`
}

// =====================================================
// RESPONSES
// =====================================================

type AddBookResponse struct {
	Message string `json:"message"`
	Book    *Book  `json:"book"`
}
