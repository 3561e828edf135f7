package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/kritika/data"
	"github.com/lib/pq"
)

type titles interface {
	CreateTitle(title *data.Title) error
	GetTitle(ID int64) (*data.Title, error)
	GetAllTitles(name, category, genre string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error)
	UpdateTitle(title *data.Title) error
	DeleteTitle(ID int64) error
	AddGenresForTitle(titleID int64, slugs []string) error
	DeleteGenresForTitle(titleID int64) error
	GetGenresForTitle(titleID int64) ([]data.Genre, error)
}

// CreateTitle creates a title record. The category is resolved by slug inside
// the insert; an unknown slug produces no row and maps to ErrRecordNotFound.
func (r *repository) CreateTitle(title *data.Title) error {
	query := `
		INSERT INTO titles (name, year, description, category_id)
		SELECT $1, $2, $3, categories.id
		FROM categories
		WHERE categories.slug = $4
		RETURNING id, version`
	args := []interface{}{title.Name, title.Year, title.Description, title.Category.Slug}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&title.ID, &title.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// GetTitle retrieves a title record together with its category and the mean
// review score. The rating is NULL when the title has no reviews, so it scans
// through a NullFloat64 and stays nil rather than defaulting to zero.
func (r *repository) GetTitle(ID int64) (*data.Title, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT titles.id, titles.name, titles.year, titles.description, categories.name, categories.slug, AVG(reviews.score), titles.version
		FROM titles
		INNER JOIN categories ON titles.category_id = categories.id
		LEFT JOIN reviews ON reviews.title_id = titles.id
		WHERE titles.id = $1
		GROUP BY titles.id, categories.id`
	var title data.Title
	var rating sql.NullFloat64
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, ID).Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&title.Category.Name,
		&title.Category.Slug,
		&rating,
		&title.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if rating.Valid {
		title.Rating = &rating.Float64
	}
	genres, err := r.GetGenresForTitle(title.ID)
	if err != nil {
		return nil, err
	}
	title.Genres = genres
	return &title, nil
}

// GetAllTitles retrieves a paginated record of all titles. Records can be
// filtered by name, category slug, genre slug and year, and sorted.
func (r *repository) GetAllTitles(name, category, genre string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), titles.id, titles.name, titles.year, titles.description, categories.name AS category_name, categories.slug, AVG(reviews.score), titles.version
		FROM titles
		INNER JOIN categories ON titles.category_id = categories.id
		LEFT JOIN reviews ON reviews.title_id = titles.id
		WHERE (titles.name ILIKE '%%' || $1 || '%%' OR $1 = '')
		AND (categories.slug = $2 OR $2 = '')
		AND (titles.year = $3 OR $3 = 0)
		AND ($4 = '' OR EXISTS (
			SELECT 1 FROM titles_genres
			INNER JOIN genres ON titles_genres.genre_id = genres.id
			WHERE titles_genres.title_id = titles.id AND genres.slug = $4
		))
		GROUP BY titles.id, categories.id
		ORDER BY %s %s, titles.id ASC
		LIMIT $5 OFFSET $6`,
		filters.SortColumn(), filters.SortDirection(),
	)
	args := []interface{}{name, category, year, genre, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	titleList := []*data.Title{}
	for rows.Next() {
		var title data.Title
		var rating sql.NullFloat64
		err := rows.Scan(
			&totalRecords,
			&title.ID,
			&title.Name,
			&title.Year,
			&title.Description,
			&title.Category.Name,
			&title.Category.Slug,
			&rating,
			&title.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		if rating.Valid {
			title.Rating = &rating.Float64
		}
		titleList = append(titleList, &title)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	for _, title := range titleList {
		title.Genres, err = r.GetGenresForTitle(title.ID)
		if err != nil {
			return nil, data.Metadata{}, err
		}
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return titleList, metadata, nil
}

// UpdateTitle updates a title record. The category is resolved by slug inside
// the update; an unknown slug leaves the subquery NULL, which trips the
// not-null constraint and maps to ErrRecordNotFound.
func (r *repository) UpdateTitle(title *data.Title) error {
	query := `
		UPDATE titles
		SET name = $1, year = $2, description = $3,
			category_id = (SELECT id FROM categories WHERE slug = $4),
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version`
	args := []interface{}{title.Name, title.Year, title.Description, title.Category.Slug, title.ID, title.Version}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&title.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		case err.Error() == `pq: null value in column "category_id" of relation "titles" violates not-null constraint`:
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// DeleteTitle deletes a title record. Reviews and comments cascade away with it.
func (r *repository) DeleteTitle(ID int64) error {
	if ID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM titles
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, ID)
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

// AddGenresForTitle associates a title record with genres resolved by slug.
func (r *repository) AddGenresForTitle(titleID int64, slugs []string) error {
	if len(slugs) == 0 {
		return nil
	}
	query := `
		INSERT INTO titles_genres (title_id, genre_id)
		SELECT $1, genres.id
		FROM genres
		WHERE genres.slug = ANY($2)`
	args := []interface{}{titleID, pq.Array(slugs)}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "titles_genres_pkey"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// DeleteGenresForTitle removes all genre associations for a title record.
func (r *repository) DeleteGenresForTitle(titleID int64) error {
	query := `
		DELETE FROM titles_genres
		WHERE title_id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, query, titleID)
	return err
}

// GetGenresForTitle retrieves the genres associated with a title record.
func (r *repository) GetGenresForTitle(titleID int64) ([]data.Genre, error) {
	query := `
		SELECT genres.id, genres.name, genres.slug
		FROM genres
		INNER JOIN titles_genres ON titles_genres.genre_id = genres.id
		WHERE titles_genres.title_id = $1
		ORDER BY genres.name ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, titleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	genreList := []data.Genre{}
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
		genreList = append(genreList, genre)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return genreList, nil
}
