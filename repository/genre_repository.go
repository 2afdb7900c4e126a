package repository

import (
	"context"
	"database/sql"
	"livelib-api/model"
)

type GenreRepository struct {
	DB *sql.DB
}

func NewGenreRepository(db *sql.DB) *GenreRepository {
	return &GenreRepository{DB: db}
}

func (r *GenreRepository) CreateGenre(ctx context.Context, genre *model.Genre) error {
	query := `INSERT INTO genres (name) VALUES ($1) RETURNING id`
	return r.DB.QueryRowContext(ctx, query, genre.Name).Scan(&genre.ID)
}

func (r *GenreRepository) GetAllGenres(ctx context.Context) ([]*model.Genre, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []*model.Genre
	for rows.Next() {
		genre := &model.Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}
	return genres, rows.Err()
}

func (r *GenreRepository) DeleteGenre(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM genres WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}
