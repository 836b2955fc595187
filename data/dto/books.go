package dto

import "github.com/emzola/bookshelf/data"

// QsListBooks defines the query strings used for listing books. Available is
// a pointer so an absent parameter can be told apart from an explicit false.
type QsListBooks struct {
	Author    string
	Year      int
	Available *bool
	Filters   data.Filters
}

// CreateBookRequestBody defines the request body for the CreateBook service.
// An omitted available field leaves the book unavailable.
type CreateBookRequestBody struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int    `json:"year"`
	ISBN      string `json:"isbn"`
	Available bool   `json:"available"`
}

// UpdateBookRequestBody defines the request body for the UpdateBook service.
// The fields are set to a pointer type to allow partial updates based on
// whether the value is nil.
type UpdateBookRequestBody struct {
	Title     *string `json:"title"`
	Author    *string `json:"author"`
	Year      *int    `json:"year"`
	ISBN      *string `json:"isbn"`
	Available *bool   `json:"available"`
}
