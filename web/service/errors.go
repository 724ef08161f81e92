// Package service holds the shop's business logic on top of the database and image store.
package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrCategoryInUse      = errors.New("category still has articles")
	ErrCategoryMissing    = errors.New("category does not exist")
	ErrInvalidArticle     = errors.New("invalid article id")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrInvalidFilename    = errors.New("invalid image filename")
	ErrNotImage           = errors.New("uploaded file is not an image")
	ErrEmptyUsername      = errors.New("username can not be empty")
	ErrEmptyName          = errors.New("name can not be empty")
	ErrInvalidPrice       = errors.New("price must be a finite non-negative number")
)
