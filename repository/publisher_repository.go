package repository

import (
	"context"
	"database/sql"
	"livelib-api/model"
)

type PublisherRepository struct {
	DB *sql.DB
}

func NewPublisherRepository(db *sql.DB) *PublisherRepository {
	return &PublisherRepository{DB: db}
}

func (r *PublisherRepository) CreatePublisher(ctx context.Context, publisher *model.Publisher) error {
	query := `INSERT INTO publishers (name) VALUES ($1) RETURNING id`
	return r.DB.QueryRowContext(ctx, query, publisher.Name).Scan(&publisher.ID)
}

func (r *PublisherRepository) GetAllPublishers(ctx context.Context) ([]*model.Publisher, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM publishers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var publishers []*model.Publisher
	for rows.Next() {
		publisher := &model.Publisher{}
		if err := rows.Scan(&publisher.ID, &publisher.Name); err != nil {
			return nil, err
		}
		publishers = append(publishers, publisher)
	}
	return publishers, rows.Err()
}

func (r *PublisherRepository) DeletePublisher(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM publishers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}
