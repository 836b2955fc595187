package memory

import (
	"fmt"
	"testing"

	"github.com/emzola/bookshelf/data"
	"github.com/emzola/bookshelf/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBook(t *testing.T, repo *Repository, title, author string, year int, available bool) *data.Book {
	t.Helper()
	book := &data.Book{
		Title:     title,
		Author:    author,
		Year:      year,
		ISBN:      "9780132350884",
		Available: available,
	}
	require.NoError(t, repo.CreateBook(book))
	return book
}

func TestCreateBookAssignsMonotonicIDs(t *testing.T) {
	repo := New()

	first := seedBook(t, repo, "Clean Code", "Robert Martin", 2008, true)
	second := seedBook(t, repo, "Clean Architecture", "Robert Martin", 2017, true)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	require.NoError(t, repo.DeleteBook(second.ID))
	third := seedBook(t, repo, "The Clean Coder", "Robert Martin", 2011, true)
	assert.Equal(t, int64(3), third.ID, "deleted ids must not be reused")
}

func TestGetBook(t *testing.T) {
	repo := New()
	created := seedBook(t, repo, "Clean Code", "Robert Martin", 2008, true)

	got, err := repo.GetBook(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = repo.GetBook(99)
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
}

func TestGetBookReturnsACopy(t *testing.T) {
	repo := New()
	created := seedBook(t, repo, "Clean Code", "Robert Martin", 2008, true)

	got, err := repo.GetBook(created.ID)
	require.NoError(t, err)
	got.Title = "scribbled over"

	again, err := repo.GetBook(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clean Code", again.Title)
}

func TestUpdateBook(t *testing.T) {
	repo := New()
	created := seedBook(t, repo, "Clean Code", "Robert Martin", 2008, true)

	created.Available = false
	require.NoError(t, repo.UpdateBook(created))

	got, err := repo.GetBook(created.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, "Clean Code", got.Title)

	missing := &data.Book{ID: 99, Title: "Ghost", Author: "Nobody", Year: 2000, ISBN: "9780132350884"}
	assert.ErrorIs(t, repo.UpdateBook(missing), repository.ErrRecordNotFound)
}

func TestDeleteBook(t *testing.T) {
	repo := New()
	created := seedBook(t, repo, "Clean Code", "Robert Martin", 2008, true)

	require.NoError(t, repo.DeleteBook(created.ID))

	_, err := repo.GetBook(created.ID)
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)

	assert.ErrorIs(t, repo.DeleteBook(created.ID), repository.ErrRecordNotFound)
}

func TestGetAllBooksFiltersAndPaginates(t *testing.T) {
	repo := New()
	seedBook(t, repo, "Clean Code", "Robert Martin", 2008, true)
	seedBook(t, repo, "The Go Programming Language", "Alan Donovan", 2015, true)
	seedBook(t, repo, "Clean Architecture", "Robert Martin", 2017, false)

	t.Run("author substring is case-insensitive", func(t *testing.T) {
		books, metadata, err := repo.GetAllBooks("martin", 0, nil, data.Filters{Page: 1, PageSize: 10})
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, int64(1), books[0].ID)
		assert.Equal(t, int64(3), books[1].ID)
		assert.Equal(t, 2, metadata.TotalItems)
	})

	t.Run("predicates combine with AND", func(t *testing.T) {
		available := true
		books, _, err := repo.GetAllBooks("martin", 0, &available, data.Filters{Page: 1, PageSize: 10})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Clean Code", books[0].Title)
	})

	t.Run("year is an exact match", func(t *testing.T) {
		books, _, err := repo.GetAllBooks("", 2015, nil, data.Filters{Page: 1, PageSize: 10})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "The Go Programming Language", books[0].Title)
	})

	t.Run("page beyond the last is empty with intact metadata", func(t *testing.T) {
		books, metadata, err := repo.GetAllBooks("", 0, nil, data.Filters{Page: 5, PageSize: 10})
		require.NoError(t, err)
		assert.Empty(t, books)
		assert.Equal(t, 3, metadata.TotalItems)
		assert.Equal(t, 1, metadata.TotalPages)
	})
}

func TestGetAllBooksSecondPage(t *testing.T) {
	repo := New()
	for i := 1; i <= 15; i++ {
		seedBook(t, repo, fmt.Sprintf("Book %d", i), "Author", 2000, true)
	}

	books, metadata, err := repo.GetAllBooks("", 0, nil, data.Filters{Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, books, 5)
	assert.Equal(t, int64(11), books[0].ID)
	assert.Equal(t, 15, metadata.TotalItems)
	assert.Equal(t, 2, metadata.TotalPages)
}
