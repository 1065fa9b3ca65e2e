package repository

import "errors"

var (
	ErrAlreadyExists     = errors.New("repository: already exists")
	ErrReferenceNotFound = errors.New("repository: referenced record not found")
)
