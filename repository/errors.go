package repository

import "errors"

// ErrRecordNotFound is returned by every backend when a book id does not
// exist. Any other error is a storage failure and propagates verbatim.
var ErrRecordNotFound = errors.New("record not found")
