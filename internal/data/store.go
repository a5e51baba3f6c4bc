package data

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/emzola/bookshelf/internal/jsonlog"
)

// booksDocument is the on-disk shape of the books file.
type booksDocument struct {
	Books []Book `json:"books"`
}

// reviewsDocument is the on-disk shape of the reviews file.
type reviewsDocument struct {
	Reviews []Review `json:"reviews"`
}

// Store holds the catalogue in memory and mirrors it to two JSON documents
// on disk. A single mutex covers both collections and the persist step, so a
// mutation and its serialization can never interleave with another writer.
type Store struct {
	booksFile   string
	reviewsFile string
	logger      *jsonlog.Logger
	mu          sync.RWMutex
	books       []Book
	reviews     []Review
}

// NewStore returns a Store backed by the two document paths. Nothing is read
// from disk until Load is called.
func NewStore(booksFile, reviewsFile string, logger *jsonlog.Logger) *Store {
	return &Store{
		booksFile:   booksFile,
		reviewsFile: reviewsFile,
		logger:      logger,
	}
}

// Load reads both documents from disk into the in-memory collections,
// replacing whatever they previously held. A missing or malformed document is
// an error; the caller treats it as fatal.
func (s *Store) Load() error {
	var books booksDocument
	if err := readDocument(s.booksFile, &books); err != nil {
		return err
	}
	var reviews reviewsDocument
	if err := readDocument(s.reviewsFile, &reviews); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = books.Books
	s.reviews = reviews.Reviews
	if s.books == nil {
		s.books = []Book{}
	}
	if s.reviews == nil {
		s.reviews = []Review{}
	}
	return nil
}

// persist rewrites both documents in full. The caller must hold the write
// lock. A failed write is logged and otherwise ignored; the in-memory
// mutation already happened and stands.
func (s *Store) persist() {
	s.writeDocument(s.booksFile, booksDocument{Books: s.books})
	s.writeDocument(s.reviewsFile, reviewsDocument{Reviews: s.reviews})
}

func (s *Store) writeDocument(path string, doc interface{}) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.logger.PrintError(err, map[string]string{"file": path})
		return
	}
	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		s.logger.PrintError(err, map[string]string{"file": path})
	}
}

func readDocument(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	err = json.Unmarshal(data, dst)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// bookExists reports whether a book with the given ID is in the catalogue.
// The caller must hold at least a read lock.
func (s *Store) bookExists(id string) bool {
	for i := range s.books {
		if s.books[i].ID == id {
			return true
		}
	}
	return false
}

// Stats reports the live collection sizes for the expvar metrics.
type Stats struct {
	Books   int `json:"books"`
	Reviews int `json:"reviews"`
}

// Stats returns the current number of books and reviews held in memory.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Books:   len(s.books),
		Reviews: len(s.reviews),
	}
}
