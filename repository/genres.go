package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/kritika/data"
)

type genres interface {
	CreateGenre(genre *data.Genre) error
	GetGenreBySlug(slug string) (*data.Genre, error)
	GetAllGenres(name string) ([]*data.Genre, error)
	DeleteGenre(slug string) error
}

// CreateGenre creates a genre record.
func (r *repository) CreateGenre(genre *data.Genre) error {
	query := `
		INSERT INTO genres (name, slug)
		VALUES ($1, $2)
		RETURNING id`
	args := []interface{}{genre.Name, genre.Slug}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&genre.ID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "genres_slug_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetGenreBySlug retrieves a genre record by its slug.
func (r *repository) GetGenreBySlug(slug string) (*data.Genre, error) {
	query := `
		SELECT id, name, slug
		FROM genres
		WHERE slug = $1`
	var genre data.Genre
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&genre.ID,
		&genre.Name,
		&genre.Slug,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &genre, nil
}

// GetAllGenres retrieves all genre records, optionally filtered by a
// case-insensitive name search.
func (r *repository) GetAllGenres(name string) ([]*data.Genre, error) {
	query := `
		SELECT id, name, slug
		FROM genres
		WHERE (name ILIKE '%' || $1 || '%' OR $1 = '')
		ORDER BY name ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	genreList := []*data.Genre{}
	for rows.Next() {
		var genre data.Genre
		err := rows.Scan(
			&genre.ID,
			&genre.Name,
			&genre.Slug,
		)
		if err != nil {
			return nil, err
		}
		genreList = append(genreList, &genre)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return genreList, nil
}

// DeleteGenre deletes a genre record. Rows in the titles_genres join table
// cascade away, detaching the genre from titles without touching the titles
// themselves.
func (r *repository) DeleteGenre(slug string) error {
	query := `
		DELETE FROM genres
		WHERE slug = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, slug)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
