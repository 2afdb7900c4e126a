// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUserRoleRequest defines the payload for updating a user's role.
type UpdateUserRoleRequest struct {
	Role Role `json:"role" validate:"required,oneof=admin user"`
}

// CreateBookRequest defines the payload for adding a book to the catalog.
type CreateBookRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	Author        string `json:"author" validate:"required,max=200"`
	GenreID       int    `json:"genre_id" validate:"required,gt=0"`
	PublisherID   int    `json:"publisher_id" validate:"required,gt=0"`
	PublishedYear int    `json:"published_year" validate:"omitempty,gte=0"`
}

// UpdateBookRequest mirrors CreateBookRequest for full updates.
type UpdateBookRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	Author        string `json:"author" validate:"required,max=200"`
	GenreID       int    `json:"genre_id" validate:"required,gt=0"`
	PublisherID   int    `json:"publisher_id" validate:"required,gt=0"`
	PublishedYear int    `json:"published_year" validate:"omitempty,gte=0"`
}

// CreateNameRequest is shared by genres and publishers, which are both
// plain named entities.
type CreateNameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CreateReviewRequest defines the payload for reviewing a book.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// CreateCollectionRequest defines the payload for creating a collection.
type CreateCollectionRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
}
