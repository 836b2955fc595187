package service

import (
	"errors"

	"github.com/emzola/bookshelf/data"
	"github.com/emzola/bookshelf/data/dto"
	"github.com/emzola/bookshelf/internal/validator"
	"github.com/emzola/bookshelf/repository"
)

type books interface {
	CreateBook(requestBody dto.CreateBookRequestBody) (*data.Book, error)
	GetBook(bookID int64) (*data.Book, error)
	ListBooks(author string, year int, available *bool, filters data.Filters) ([]*data.Book, data.Metadata, error)
	UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error)
	DeleteBook(bookID int64) error
}

// CreateBook service creates a new book. A request body without an
// available field leaves the book unavailable.
func (s *service) CreateBook(requestBody dto.CreateBookRequestBody) (*data.Book, error) {
	book := &data.Book{
		Title:     requestBody.Title,
		Author:    requestBody.Author,
		Year:      requestBody.Year,
		ISBN:      requestBody.ISBN,
		Available: requestBody.Available,
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, &ValidationError{Errors: v.Errors}
	}
	err := s.repo.CreateBook(book)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// GetBook service retrieves the details of a book.
func (s *service) GetBook(bookID int64) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// ListBooks service retrieves a paginated list of the books matching the
// supplied predicates. Out-of-range pagination values are clamped rather
// than rejected.
func (s *service) ListBooks(author string, year int, available *bool, filters data.Filters) ([]*data.Book, data.Metadata, error) {
	filters.Normalize()
	books, metadata, err := s.repo.GetAllBooks(author, year, available, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return books, metadata, nil
}

// UpdateBook service updates the details of a specific book. Only the
// fields present in the request body are changed and re-validated; the rest
// keep their stored values.
func (s *service) UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	v := validator.New()
	if requestBody.Title != nil {
		book.Title = *requestBody.Title
		data.ValidateTitle(v, book.Title)
	}
	if requestBody.Author != nil {
		book.Author = *requestBody.Author
		data.ValidateAuthor(v, book.Author)
	}
	if requestBody.Year != nil {
		book.Year = *requestBody.Year
		data.ValidateYear(v, book.Year)
	}
	if requestBody.ISBN != nil {
		book.ISBN = *requestBody.ISBN
		data.ValidateISBN(v, book.ISBN)
	}
	if requestBody.Available != nil {
		book.Available = *requestBody.Available
	}
	if !v.Valid() {
		return nil, &ValidationError{Errors: v.Errors}
	}
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// DeleteBook service deletes a book.
func (s *service) DeleteBook(bookID int64) error {
	err := s.repo.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}
