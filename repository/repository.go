// Package repository defines the storage contract implemented by every
// backend. Callers depend on the interface alone, so the in-memory, SQLite
// and PostgreSQL variants are interchangeable.
package repository

import "github.com/emzola/bookshelf/data"

// Repository defines the app's storage layer.
type Repository interface {
	books
}

type books interface {
	CreateBook(book *data.Book) error
	GetBook(id int64) (*data.Book, error)
	GetAllBooks(author string, year int, available *bool, filters data.Filters) ([]*data.Book, data.Metadata, error)
	UpdateBook(book *data.Book) error
	DeleteBook(id int64) error
}
