package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/emzola/bookshelf/internal/data"
	"github.com/emzola/bookshelf/internal/validator"
)

func (app *application) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books := app.models.Books.GetAll()
	err := app.encodeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r, "id")
	// The two reserved listing segments share the :id position in the route
	// table; dispatch them before treating the value as an ID.
	switch id {
	case "published":
		app.listPublishedBooksHandler(w, r)
		return
	case "top-rated":
		app.listTopRatedBooksHandler(w, r)
		return
	}
	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.bookNotFoundTextResponse(w)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}
	err = app.encodeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listPublishedBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	startDate := qs.Get("startDate")
	endDate := qs.Get("endDate")
	if startDate == "" || endDate == "" {
		app.badRequestTextResponse(w, "startDate and endDate query parameters are required")
		return
	}
	start, err := data.ParseDate(startDate)
	if err != nil {
		app.badRequestTextResponse(w, "startDate and endDate must be calendar dates in YYYY-MM-DD form")
		return
	}
	end, err := data.ParseDate(endDate)
	if err != nil {
		app.badRequestTextResponse(w, "startDate and endDate must be calendar dates in YYYY-MM-DD form")
		return
	}
	books := app.models.Books.GetByDateRange(start, end)
	err = app.encodeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listTopRatedBooksHandler(w http.ResponseWriter, r *http.Request) {
	books := app.models.Books.GetTopRated(10)
	err := app.encodeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listFeaturedBooksHandler(w http.ResponseWriter, r *http.Request) {
	books := app.models.Books.GetFeatured()
	err := app.encodeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
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
		InStock       *bool    `json:"inStock"`
		Featured      bool     `json:"featured"`
	}
	err := app.decodeJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	book := &data.Book{
		Title:         input.Title,
		Author:        input.Author,
		Description:   input.Description,
		Price:         input.Price,
		ISBN:          input.ISBN,
		Genre:         input.Genre,
		Tags:          input.Tags,
		DatePublished: input.DatePublished,
		Pages:         input.Pages,
		Language:      input.Language,
		Publisher:     input.Publisher,
		Featured:      input.Featured,
	}
	// Absent optional fields take the catalogue defaults.
	if book.Genre == nil {
		book.Genre = []string{}
	}
	if book.Tags == nil {
		book.Tags = []string{}
	}
	if book.DatePublished == "" {
		book.DatePublished = time.Now().UTC().Format("2006-01-02")
	}
	if book.Language == "" {
		book.Language = "English"
	}
	book.InStock = true
	if input.InStock != nil {
		book.InStock = *input.InStock
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}
	app.models.Books.Insert(book)
	// Set location header for the newly created book and encode it to JSON
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/api/books/%s", book.ID))
	err = app.encodeJSON(w, http.StatusCreated, book, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
