package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/bookshelf/internal/data"
	"github.com/emzola/bookshelf/internal/validator"
)

func (app *application) listBookReviewsHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r, "id")
	reviews, err := app.models.Reviews.GetAllForBook(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.bookNotFoundTextResponse(w)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}
	err = app.encodeJSON(w, http.StatusOK, reviews, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	// The rating arrives untyped so that numbers and numeric strings are both
	// accepted; anything else coerces to zero and fails validation.
	var input struct {
		BookID  string      `json:"bookId"`
		Author  string      `json:"author"`
		Rating  interface{} `json:"rating"`
		Title   string      `json:"title"`
		Comment string      `json:"comment"`
	}
	err := app.decodeJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	review := &data.Review{
		BookID:  input.BookID,
		Author:  input.Author,
		Rating:  app.coerceInt(input.Rating),
		Title:   input.Title,
		Comment: input.Comment,
	}
	v := validator.New()
	if data.ValidateReview(v, review); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}
	err = app.models.Reviews.Insert(review)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.unknownBookResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}
	// Set location header for the newly created review and encode it to JSON
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/api/books/%s/reviews", review.BookID))
	err = app.encodeJSON(w, http.StatusCreated, review, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
