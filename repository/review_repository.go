// file: repository/review_repository.go

package repository

import (
	"context"
	"database/sql"
	"livelib-api/model"
)

type ReviewRepository struct {
	DB *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

// CreateReview inserts the review and recomputes the book's average
// rating in the same transaction, so the two never drift apart.
func (r *ReviewRepository) CreateReview(ctx context.Context, review *model.Review) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO reviews (book_id, user_id, rating, comment)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	if err := tx.QueryRowContext(ctx, query,
		review.BookID, review.UserID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt); err != nil {
		return err
	}

	if err := updateAverageRating(ctx, tx, review.BookID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ReviewRepository) GetReviewsByBook(ctx context.Context, bookID int) ([]*model.Review, error) {
	query := `SELECT id, book_id, user_id, rating, comment, created_at
	          FROM reviews WHERE book_id=$1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		review := &model.Review{}
		if err := rows.Scan(&review.ID, &review.BookID, &review.UserID,
			&review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// DeleteReview removes a user's own review and recomputes the average.
func (r *ReviewRepository) DeleteReview(ctx context.Context, reviewID, userID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var bookID int
	query := `DELETE FROM reviews WHERE id=$1 AND user_id=$2 RETURNING book_id`
	if err := tx.QueryRowContext(ctx, query, reviewID, userID).Scan(&bookID); err != nil {
		return err
	}

	if err := updateAverageRating(ctx, tx, bookID); err != nil {
		return err
	}
	return tx.Commit()
}

func updateAverageRating(ctx context.Context, tx *sql.Tx, bookID int) error {
	query := `UPDATE books
	          SET average_rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE book_id=$1), 0)
	          WHERE id=$1`
	_, err := tx.ExecContext(ctx, query, bookID)
	return err
}
