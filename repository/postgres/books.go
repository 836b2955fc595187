package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/bookshelf/data"
	"github.com/emzola/bookshelf/repository"
)

// CreateBook creates a new book record and fills in its assigned id.
func (r *Repository) CreateBook(book *data.Book) error {
	query := `
		INSERT INTO books (title, author, year, isbn, available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	args := []interface{}{book.Title, book.Author, book.Year, book.ISBN, book.Available}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return r.db.QueryRowContext(ctx, query, args...).Scan(&book.ID)
}

// GetBook retrieves a book record by its id.
func (r *Repository) GetBook(id int64) (*data.Book, error) {
	if id < 1 {
		return nil, repository.ErrRecordNotFound
	}
	query := `
		SELECT id, title, author, year, isbn, available
		FROM books
		WHERE id = $1`
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Year,
		&book.ISBN,
		&book.Available,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, repository.ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAllBooks retrieves a paginated list of the book records matching the
// supplied predicates, in ascending id order. The match count is taken with
// a separate query so a page beyond the last one still reports correct
// totals.
func (r *Repository) GetAllBooks(author string, year int, available *bool, filters data.Filters) ([]*data.Book, data.Metadata, error) {
	var availableArg interface{}
	if available != nil {
		availableArg = *available
	}

	countQuery := `
		SELECT count(*)
		FROM books
		WHERE (author ILIKE '%' || $1 || '%' OR $1 = '')
		AND (year = $2 OR $2 = 0)
		AND (available = $3 OR $3 IS NULL)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	totalRecords := 0
	err := r.db.QueryRowContext(ctx, countQuery, author, year, availableArg).Scan(&totalRecords)
	if err != nil {
		return nil, data.Metadata{}, err
	}

	query := `
		SELECT id, title, author, year, isbn, available
		FROM books
		WHERE (author ILIKE '%' || $1 || '%' OR $1 = '')
		AND (year = $2 OR $2 = 0)
		AND (available = $3 OR $3 IS NULL)
		ORDER BY id ASC
		LIMIT $4 OFFSET $5`
	args := []interface{}{author, year, availableArg, filters.Limit(), filters.Offset()}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()

	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Year,
			&book.ISBN,
			&book.Available,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return books, metadata, nil
}

// UpdateBook updates a book record.
func (r *Repository) UpdateBook(book *data.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, year = $3, isbn = $4, available = $5
		WHERE id = $6`
	args := []interface{}{book.Title, book.Author, book.Year, book.ISBN, book.Available, book.ID}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrRecordNotFound
	}
	return nil
}

// DeleteBook deletes a book record.
func (r *Repository) DeleteBook(id int64) error {
	if id < 1 {
		return repository.ErrRecordNotFound
	}
	query := `
		DELETE FROM books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrRecordNotFound
	}
	return nil
}
