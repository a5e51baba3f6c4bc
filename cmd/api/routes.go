package main

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthcheckHandler)

	// The published and top-rated listings live under the same path segment
	// as the book IDs, which the router cannot register as static siblings
	// of the :id wildcard. showBookHandler dispatches those two reserved
	// segments before treating the value as an ID.
	router.HandlerFunc(http.MethodGet, "/api/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/api/books", app.requireBasicAuth(app.createBookHandler))
	router.HandlerFunc(http.MethodGet, "/api/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodGet, "/api/books/:id/reviews", app.listBookReviewsHandler)

	router.HandlerFunc(http.MethodGet, "/api/featured", app.listFeaturedBooksHandler)

	router.HandlerFunc(http.MethodPost, "/api/reviews", app.requireBasicAuth(app.createReviewHandler))

	router.HandlerFunc(http.MethodGet, "/debug/vars", app.requireBasicAuth(expvar.Handler().ServeHTTP))

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", app.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return app.metrics(app.recoverPanic(app.enableCORS(app.rateLimit(router))))
}
