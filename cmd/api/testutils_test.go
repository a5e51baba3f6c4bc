package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/emzola/bookshelf/config"
	"github.com/emzola/bookshelf/internal/data"
	"github.com/emzola/bookshelf/internal/jsonlog"
)

func testBooks() []data.Book {
	return []data.Book{
		{
			ID:            "1",
			Title:         "A Field Guide to Shelves",
			Author:        "N. Archer",
			Description:   "Every shelf, catalogued.",
			Price:         24.0,
			ISBN:          "978-1000000001",
			Genre:         []string{"Reference"},
			Tags:          []string{"guide"},
			DatePublished: "2020-05-20",
			Pages:         310,
			Language:      "English",
			Publisher:     "Stacks Press",
			Rating:        4.0,
			ReviewCount:   6,
			InStock:       true,
			Featured:      true,
		},
		{
			ID:            "2",
			Title:         "The Quiet Reading Room",
			Author:        "O. Binder",
			Description:   "Essays on libraries.",
			Price:         18.0,
			ISBN:          "978-1000000002",
			Genre:         []string{"Essays"},
			Tags:          []string{},
			DatePublished: "2021-02-11",
			Pages:         180,
			Language:      "English",
			Publisher:     "Folio House",
			Rating:        5.0,
			ReviewCount:   2,
			InStock:       true,
			Featured:      false,
		},
		{
			ID:            "3",
			Title:         "Paper and Thread",
			Author:        "P. Coil",
			Description:   "Bookbinding for beginners.",
			Price:         32.5,
			ISBN:          "978-1000000003",
			Genre:         []string{"Craft"},
			Tags:          []string{"hands-on"},
			DatePublished: "2020-09-01",
			Pages:         240,
			Language:      "English",
			Publisher:     "Stacks Press",
			Rating:        3.5,
			ReviewCount:   8,
			InStock:       false,
			Featured:      true,
		},
	}
}

func testReviews() []data.Review {
	return []data.Review{
		{
			ID:        "review-1",
			BookID:    "1",
			Author:    "Reader One",
			Rating:    4,
			Title:     "Thorough",
			Comment:   "Found my own shelves in chapter three.",
			Timestamp: "2022-04-01T10:00:00Z",
			Verified:  true,
		},
		{
			ID:        "review-2",
			BookID:    "1",
			Author:    "Reader Two",
			Rating:    5,
			Title:     "",
			Comment:   "The index alone is worth the price.",
			Timestamp: "2022-04-02T12:30:00Z",
			Verified:  false,
		},
	}
}

// newTestApplication builds an application over a temp-directory catalogue.
// The limiter and metrics middleware are disabled so that tests exercising
// them can opt in individually.
func newTestApplication(t *testing.T) *application {
	t.Helper()
	dir := t.TempDir()
	booksFile := filepath.Join(dir, "books.json")
	reviewsFile := filepath.Join(dir, "reviews.json")
	writeTestDocument(t, booksFile, map[string]interface{}{"books": testBooks()})
	writeTestDocument(t, reviewsFile, map[string]interface{}{"reviews": testReviews()})

	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	store := data.NewStore(booksFile, reviewsFile, logger)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}

	var cfg config.Config
	cfg.Server.Port = 4000
	cfg.Server.Env = "test"
	cfg.Store.BooksFile = booksFile
	cfg.Store.ReviewsFile = reviewsFile
	cfg.Limiter.Enabled = false
	cfg.Metrics.Enabled = false
	cfg.BasicAuth.Username = "admin"
	cfg.BasicAuth.Password = "password"

	return &application{
		config: cfg,
		logger: logger,
		models: *data.NewModels(store),
	}
}

func writeTestDocument(t *testing.T, path string, doc interface{}) {
	t.Helper()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

// doRequest runs one request through the full handler chain and returns the
// recorder.
func doRequest(t *testing.T, h http.Handler, method, target string, body io.Reader, withAuth bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		req.SetBasicAuth("admin", "password")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// decodeBody unmarshals a response body into dst, failing the test on error.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("unable to unmarshal response body %q: %v", rr.Body.String(), err)
	}
}
