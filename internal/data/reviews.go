package data

import (
	"time"

	"github.com/emzola/bookshelf/internal/validator"
	"github.com/google/uuid"
)

// The Review struct contains the data fields for a book review. The
// timestamp is kept as the RFC 3339 string assigned at creation so that
// records round-trip through the persisted documents unchanged.
type Review struct {
	ID        string `json:"id"`
	BookID    string `json:"bookId"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
	Timestamp string `json:"timestamp"`
	Verified  bool   `json:"verified"`
}

func ValidateReview(v *validator.Validator, review *Review) {
	v.Check(review.BookID != "", "bookId", "must be provided")
	v.Check(review.Author != "", "author", "must be provided")
	v.Check(review.Rating != 0, "rating", "must be provided")
	v.Check(review.Comment != "", "comment", "must be provided")
}

// The ReviewModel struct wraps the shared Store for Review.
type ReviewModel struct {
	Store *Store
}

// Insert appends a review after checking that its book exists, then rewrites
// the persisted documents. The existence check, append and persist all run
// under the write lock, so a concurrent writer cannot remove the guarantee
// between the check and the append. An unknown book returns
// ErrRecordNotFound and leaves both collections and documents untouched.
func (m ReviewModel) Insert(review *Review) error {
	s := m.Store
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.bookExists(review.BookID) {
		return ErrRecordNotFound
	}
	review.ID = "review-" + uuid.NewString()
	review.Timestamp = time.Now().UTC().Format(time.RFC3339)
	review.Verified = false
	s.reviews = append(s.reviews, *review)
	s.persist()
	return nil
}

// GetAllForBook returns the reviews for a book in catalogue order. The
// result is empty but non-nil when the book exists and has no reviews; an
// unknown book returns ErrRecordNotFound.
func (m ReviewModel) GetAllForBook(bookID string) ([]Review, error) {
	s := m.Store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.bookExists(bookID) {
		return nil, ErrRecordNotFound
	}
	reviews := []Review{}
	for _, review := range s.reviews {
		if review.BookID == bookID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}
