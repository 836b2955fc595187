package data

import (
	"strings"
	"time"

	"github.com/emzola/bookshelf/internal/validator"
)

// Book defines a book record.
type Book struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int    `json:"year"`
	ISBN      string `json:"isbn"`
	Available bool   `json:"available"`
}

// ValidateTitle checks that a title is not blank.
func ValidateTitle(v *validator.Validator, title string) {
	v.Check(strings.TrimSpace(title) != "", "title", "must be provided")
}

// ValidateAuthor checks that an author is not blank.
func ValidateAuthor(v *validator.Validator, author string) {
	v.Check(strings.TrimSpace(author) != "", "author", "must be provided")
}

// ValidateYear checks that a publication year falls between 1000 and the
// current calendar year.
func ValidateYear(v *validator.Validator, year int) {
	v.Check(year >= 1000, "year", "must be no earlier than 1000")
	v.Check(year <= time.Now().Year(), "year", "must not be in the future")
}

// ValidateISBN checks that an ISBN contains exactly 13 digits once any
// hyphens have been stripped. The value itself is stored as supplied.
func ValidateISBN(v *validator.Validator, isbn string) {
	digits := strings.ReplaceAll(isbn, "-", "")
	v.Check(validator.Matches(digits, validator.ISBN13RX), "isbn", "must be a valid ISBN-13")
}

// ValidateBook runs every field check against a fully populated book.
func ValidateBook(v *validator.Validator, book *Book) {
	ValidateTitle(v, book.Title)
	ValidateAuthor(v, book.Author)
	ValidateYear(v, book.Year)
	ValidateISBN(v, book.ISBN)
}
