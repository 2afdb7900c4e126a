package router

import (
	"livelib-api/handler"
	"livelib-api/service"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "livelib-api/docs"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Books       *handler.BookHandler
	Genres      *handler.GenreHandler
	Publishers  *handler.PublisherHandler
	Reviews     *handler.ReviewHandler
	Collections *handler.CollectionHandler
	Health      *handler.HealthHandler
}

func NewRouter(h Handlers, issuer *service.TokenIssuer) http.Handler {
	mux := http.NewServeMux()
	authorized := handler.NewAuthMiddleware(issuer)
	admin := func(next http.Handler) http.Handler { return authorized(handler.AdminMiddleware(next)) }

	mux.HandleFunc("GET /health", h.Health.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Auth. Session endpoints authorize via the refresh cookie; the rest
	// of the API authorizes via the bearer access token.
	mux.Handle("POST /auth/register", handler.ErrorHandlingMiddleware(h.Auth.Register))
	mux.Handle("POST /auth/login", handler.ErrorHandlingMiddleware(h.Auth.Login))
	mux.Handle("POST /auth/refresh", handler.ErrorHandlingMiddleware(h.Auth.Refresh))
	mux.Handle("POST /auth/logout", handler.ErrorHandlingMiddleware(h.Auth.Logout))
	mux.Handle("POST /auth/logoutAll", authorized(handler.ErrorHandlingMiddleware(h.Auth.LogoutAll)))
	mux.Handle("POST /auth/revokeSession/{sessionId}", handler.ErrorHandlingMiddleware(h.Auth.RevokeSession))
	mux.Handle("GET /auth/activeSessions", handler.ErrorHandlingMiddleware(h.Auth.ActiveSessions))

	// Catalog.
	mux.Handle("GET /api/books", authorized(handler.ErrorHandlingMiddleware(h.Books.ListBooks)))
	mux.Handle("GET /api/books/{id}", authorized(handler.ErrorHandlingMiddleware(h.Books.GetBook)))
	mux.Handle("POST /api/books", admin(handler.ErrorHandlingMiddleware(h.Books.CreateBook)))
	mux.Handle("PUT /api/books/{id}", admin(handler.ErrorHandlingMiddleware(h.Books.UpdateBook)))
	mux.Handle("DELETE /api/books/{id}", admin(handler.ErrorHandlingMiddleware(h.Books.DeleteBook)))

	mux.Handle("GET /api/genres", authorized(handler.ErrorHandlingMiddleware(h.Genres.ListGenres)))
	mux.Handle("POST /api/genres", admin(handler.ErrorHandlingMiddleware(h.Genres.CreateGenre)))
	mux.Handle("DELETE /api/genres/{id}", admin(handler.ErrorHandlingMiddleware(h.Genres.DeleteGenre)))

	mux.Handle("GET /api/publishers", authorized(handler.ErrorHandlingMiddleware(h.Publishers.ListPublishers)))
	mux.Handle("POST /api/publishers", admin(handler.ErrorHandlingMiddleware(h.Publishers.CreatePublisher)))
	mux.Handle("DELETE /api/publishers/{id}", admin(handler.ErrorHandlingMiddleware(h.Publishers.DeletePublisher)))

	mux.Handle("GET /api/books/{id}/reviews", authorized(handler.ErrorHandlingMiddleware(h.Reviews.ListReviews)))
	mux.Handle("POST /api/books/{id}/reviews", authorized(handler.ErrorHandlingMiddleware(h.Reviews.CreateReview)))
	mux.Handle("DELETE /api/reviews/{id}", authorized(handler.ErrorHandlingMiddleware(h.Reviews.DeleteReview)))

	mux.Handle("GET /api/collections", authorized(handler.ErrorHandlingMiddleware(h.Collections.ListCollections)))
	mux.Handle("POST /api/collections", authorized(handler.ErrorHandlingMiddleware(h.Collections.CreateCollection)))
	mux.Handle("GET /api/collections/{id}", authorized(handler.ErrorHandlingMiddleware(h.Collections.GetCollection)))
	mux.Handle("DELETE /api/collections/{id}", authorized(handler.ErrorHandlingMiddleware(h.Collections.DeleteCollection)))
	mux.Handle("PUT /api/collections/{id}/books/{bookId}", authorized(handler.ErrorHandlingMiddleware(h.Collections.AddBook)))
	mux.Handle("DELETE /api/collections/{id}/books/{bookId}", authorized(handler.ErrorHandlingMiddleware(h.Collections.RemoveBook)))

	// Users (admin only).
	mux.Handle("GET /api/users", admin(handler.ErrorHandlingMiddleware(h.Users.ListUsers)))
	mux.Handle("PUT /api/users/{id}/role", admin(handler.ErrorHandlingMiddleware(h.Users.UpdateUserRole)))

	return mux
}
