// file: model/catalog.go

package model

import "time"

// Genre is a book category in the catalog.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Publisher is a publishing house referenced by books.
type Publisher struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Book is a catalog entry. AverageRating is recomputed whenever a review
// for the book is created or deleted.
type Book struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	GenreID       int     `json:"genre_id"`
	PublisherID   int     `json:"publisher_id"`
	PublishedYear int     `json:"published_year"`
	AverageRating float64 `json:"average_rating"`
}

// Review is a user's rating of a book. One review per user per book.
type Review struct {
	ID        int       `json:"id"`
	BookID    int       `json:"book_id"`
	UserID    int       `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Collection is a user-curated list of books.
type Collection struct {
	ID      int    `json:"id"`
	UserID  int    `json:"user_id"`
	Title   string `json:"title"`
	BookIDs []int  `json:"book_ids,omitempty"`
}
