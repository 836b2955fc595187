// Package memory implements the repository contract with an in-process map.
// It is the default backend for development and tests; records do not
// survive a restart.
package memory

import (
	"sort"
	"sync"

	"github.com/emzola/bookshelf/data"
	"github.com/emzola/bookshelf/repository"
)

var _ repository.Repository = (*Repository)(nil)

// Repository holds book records in memory, guarded by a single lock. The
// map stores copies rather than pointers so concurrent readers never
// observe a half-written record.
type Repository struct {
	mu     sync.RWMutex
	books  map[int64]data.Book
	nextID int64
}

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{
		books:  make(map[int64]data.Book),
		nextID: 1,
	}
}

// CreateBook assigns the next id to book and stores a copy of it. Assigned
// ids are never reused, even after the record is deleted.
func (r *Repository) CreateBook(book *data.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	book.ID = r.nextID
	r.nextID++
	r.books[book.ID] = *book
	return nil
}

// GetBook retrieves a book record by its id.
func (r *Repository) GetBook(id int64) (*data.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	book, ok := r.books[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &book, nil
}

// GetAllBooks retrieves the page of book records matching the supplied
// predicates, in ascending id order.
func (r *Repository) GetAllBooks(author string, year int, available *bool, filters data.Filters) ([]*data.Book, data.Metadata, error) {
	r.mu.RLock()
	books := make([]*data.Book, 0, len(r.books))
	for id := range r.books {
		book := r.books[id]
		books = append(books, &book)
	}
	r.mu.RUnlock()

	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	page, metadata := data.ApplyBookFilter(books, author, year, available, filters)
	return page, metadata, nil
}

// UpdateBook replaces the stored record matching book's id.
func (r *Repository) UpdateBook(book *data.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[book.ID]; !ok {
		return repository.ErrRecordNotFound
	}
	r.books[book.ID] = *book
	return nil
}

// DeleteBook permanently removes a book record. The freed id is not handed
// out again.
func (r *Repository) DeleteBook(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(r.books, id)
	return nil
}
