package data

import (
	"sort"
	"time"

	"github.com/emzola/bookshelf/internal/validator"
	"github.com/google/uuid"
)

// dateLayout is the calendar form publication dates are stored in.
const dateLayout = "2006-01-02"

// ParseDate parses a publication date in the YYYY-MM-DD form.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// The Book struct contains the data fields for a catalogue book. The
// publication date stays a string so that records round-trip through the
// persisted documents byte-for-byte; it is parsed only where a query needs
// the calendar value.
type Book struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	ISBN          string   `json:"isbn"`
	Genre         []string `json:"genre"`
	Tags          []string `json:"tags"`
	DatePublished string   `json:"datePublished"`
	Pages         int      `json:"pages"`
	Language      string   `json:"language"`
	Publisher     string   `json:"publisher"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	InStock       bool     `json:"inStock"`
	Featured      bool     `json:"featured"`
}

// RankedBook is the top-rated projection: a book plus its derived score.
// The score exists only on this projection and is never persisted.
type RankedBook struct {
	Book
	RatingScore float64 `json:"ratingScore"`
}

func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(book.Author != "", "author", "must be provided")
	v.Check(book.ISBN != "", "isbn", "must be provided")
}

// The BookModel struct wraps the shared Store for Book.
type BookModel struct {
	Store *Store
}

// Insert assigns the book an ID, appends it to the catalogue and rewrites
// the persisted documents. The append and persist happen under the write
// lock; a failed persist is logged by the store and the in-memory book
// stands.
func (m BookModel) Insert(book *Book) {
	s := m.Store
	s.mu.Lock()
	defer s.mu.Unlock()
	book.ID = uuid.NewString()
	s.books = append(s.books, *book)
	s.persist()
}

// GetAll returns a snapshot of every book in catalogue order.
func (m BookModel) GetAll() []Book {
	s := m.Store
	s.mu.RLock()
	defer s.mu.RUnlock()
	books := make([]Book, len(s.books))
	copy(books, s.books)
	return books
}

// Get returns the book with the given ID, or ErrRecordNotFound.
func (m BookModel) Get(id string) (*Book, error) {
	s := m.Store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.books {
		if s.books[i].ID == id {
			book := s.books[i]
			return &book, nil
		}
	}
	return nil, ErrRecordNotFound
}

// GetByDateRange returns the books whose publication date falls within the
// inclusive [start, end] range, in catalogue order. Books whose stored date
// does not parse are left out of the result.
func (m BookModel) GetByDateRange(start, end time.Time) []Book {
	s := m.Store
	s.mu.RLock()
	defer s.mu.RUnlock()
	books := []Book{}
	for _, book := range s.books {
		published, err := ParseDate(book.DatePublished)
		if err != nil {
			continue
		}
		if !published.Before(start) && !published.After(end) {
			books = append(books, book)
		}
	}
	return books
}

// GetTopRated returns up to n books ranked by rating multiplied by review
// count, highest first. Books with equal scores keep their catalogue order.
func (m BookModel) GetTopRated(n int) []RankedBook {
	s := m.Store
	s.mu.RLock()
	defer s.mu.RUnlock()
	ranked := make([]RankedBook, 0, len(s.books))
	for _, book := range s.books {
		ranked = append(ranked, RankedBook{
			Book:        book,
			RatingScore: book.Rating * float64(book.ReviewCount),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RatingScore > ranked[j].RatingScore
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// GetFeatured returns the books flagged as featured, in catalogue order.
func (m BookModel) GetFeatured() []Book {
	s := m.Store
	s.mu.RLock()
	defer s.mu.RUnlock()
	books := []Book{}
	for _, book := range s.books {
		if book.Featured {
			books = append(books, book)
		}
	}
	return books
}
