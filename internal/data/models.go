package data

import (
	"errors"
)

var (
	ErrRecordNotFound = errors.New("record not found")
)

// Models is a convenient single 'container' which holds and represents
// all catalogue models for the application.
type Models struct {
	Books   BookModel
	Reviews ReviewModel
}

func NewModels(store *Store) *Models {
	return &Models{
		Books:   BookModel{Store: store},
		Reviews: ReviewModel{Store: store},
	}
}
