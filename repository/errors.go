package repository

import "errors"

// ErrNotFound is returned by a repository's single-row lookups when no row
// matches, in place of gorm.ErrRecordNotFound, so callers depend only on
// this package's contract.
var ErrNotFound = errors.New("record not found")
