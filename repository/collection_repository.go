// file: repository/collection_repository.go

package repository

import (
	"context"
	"database/sql"
	"livelib-api/model"

	"github.com/lib/pq"
)

type CollectionRepository struct {
	DB *sql.DB
}

func NewCollectionRepository(db *sql.DB) *CollectionRepository {
	return &CollectionRepository{DB: db}
}

func (r *CollectionRepository) CreateCollection(ctx context.Context, collection *model.Collection) error {
	query := `INSERT INTO collections (user_id, title) VALUES ($1, $2) RETURNING id`
	return r.DB.QueryRowContext(ctx, query, collection.UserID, collection.Title).Scan(&collection.ID)
}

func (r *CollectionRepository) GetCollectionsByUser(ctx context.Context, userID int) ([]*model.Collection, error) {
	query := `SELECT id, user_id, title FROM collections WHERE user_id=$1 ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []*model.Collection
	for rows.Next() {
		collection := &model.Collection{}
		if err := rows.Scan(&collection.ID, &collection.UserID, &collection.Title); err != nil {
			return nil, err
		}
		collections = append(collections, collection)
	}
	return collections, rows.Err()
}

// GetCollectionByID loads a collection together with its book ids.
func (r *CollectionRepository) GetCollectionByID(ctx context.Context, id int) (*model.Collection, error) {
	collection := &model.Collection{}
	query := `SELECT c.id, c.user_id, c.title,
	                 COALESCE(array_agg(cb.book_id) FILTER (WHERE cb.book_id IS NOT NULL), '{}')
	          FROM collections c
	          LEFT JOIN collection_books cb ON cb.collection_id = c.id
	          WHERE c.id=$1
	          GROUP BY c.id`
	var bookIDs pq.Int64Array
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&collection.ID, &collection.UserID, &collection.Title, &bookIDs)
	if err != nil {
		return nil, err
	}
	collection.BookIDs = make([]int, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		collection.BookIDs = append(collection.BookIDs, int(bookID))
	}
	return collection, nil
}

func (r *CollectionRepository) DeleteCollection(ctx context.Context, id, userID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM collections WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

// AddBook attaches a book to a collection. Adding a book twice is a no-op.
func (r *CollectionRepository) AddBook(ctx context.Context, collectionID, bookID int) error {
	query := `INSERT INTO collection_books (collection_id, book_id)
	          VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.DB.ExecContext(ctx, query, collectionID, bookID)
	return err
}

func (r *CollectionRepository) RemoveBook(ctx context.Context, collectionID, bookID int) error {
	query := `DELETE FROM collection_books WHERE collection_id=$1 AND book_id=$2`
	_, err := r.DB.ExecContext(ctx, query, collectionID, bookID)
	return err
}
