// file: repository/book_repository.go

package repository

import (
	"context"
	"database/sql"
	"livelib-api/model"
)

// IBookRepository defines the contract for book persistence.
type IBookRepository interface {
	CreateBook(ctx context.Context, book *model.Book) error
	GetBookByID(ctx context.Context, id int) (*model.Book, error)
	GetAllBooks(ctx context.Context) ([]*model.Book, error)
	UpdateBook(ctx context.Context, book *model.Book) error
	DeleteBook(ctx context.Context, id int) error
}

type BookRepository struct {
	DB *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{DB: db}
}

func (r *BookRepository) CreateBook(ctx context.Context, book *model.Book) error {
	query := `INSERT INTO books (title, author, genre_id, publisher_id, published_year)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.DB.QueryRowContext(ctx, query,
		book.Title, book.Author, book.GenreID, book.PublisherID, book.PublishedYear).
		Scan(&book.ID)
}

func (r *BookRepository) GetBookByID(ctx context.Context, id int) (*model.Book, error) {
	book := &model.Book{}
	query := `SELECT id, title, author, genre_id, publisher_id, published_year, average_rating
	          FROM books WHERE id=$1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&book.ID, &book.Title, &book.Author, &book.GenreID,
		&book.PublisherID, &book.PublishedYear, &book.AverageRating)
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (r *BookRepository) GetAllBooks(ctx context.Context) ([]*model.Book, error) {
	query := `SELECT id, title, author, genre_id, publisher_id, published_year, average_rating
	          FROM books ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		book := &model.Book{}
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.GenreID,
			&book.PublisherID, &book.PublishedYear, &book.AverageRating); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func (r *BookRepository) UpdateBook(ctx context.Context, book *model.Book) error {
	query := `UPDATE books SET title=$1, author=$2, genre_id=$3, publisher_id=$4, published_year=$5
	          WHERE id=$6`
	result, err := r.DB.ExecContext(ctx, query,
		book.Title, book.Author, book.GenreID, book.PublisherID, book.PublishedYear, book.ID)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

func (r *BookRepository) DeleteBook(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM books WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

// requireRowsAffected converts a no-op write into sql.ErrNoRows so
// handlers can answer 404 instead of 200.
func requireRowsAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
