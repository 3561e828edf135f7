package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/kritika/data"
)

type categories interface {
	CreateCategory(category *data.Category) error
	GetCategoryBySlug(slug string) (*data.Category, error)
	GetAllCategories(name string) ([]*data.Category, error)
	DeleteCategory(slug string) error
}

// CreateCategory creates a category record.
func (r *repository) CreateCategory(category *data.Category) error {
	query := `
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		RETURNING id`
	args := []interface{}{category.Name, category.Slug}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&category.ID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "categories_slug_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetCategoryBySlug retrieves a category record by its slug.
func (r *repository) GetCategoryBySlug(slug string) (*data.Category, error) {
	query := `
		SELECT id, name, slug
		FROM categories
		WHERE slug = $1`
	var category data.Category
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &category, nil
}

// GetAllCategories retrieves all category records, optionally filtered by a
// case-insensitive name search.
func (r *repository) GetAllCategories(name string) ([]*data.Category, error) {
	query := `
		SELECT id, name, slug
		FROM categories
		WHERE (name ILIKE '%' || $1 || '%' OR $1 = '')
		ORDER BY name ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	categoryList := []*data.Category{}
	for rows.Next() {
		var category data.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
		)
		if err != nil {
			return nil, err
		}
		categoryList = append(categoryList, &category)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return categoryList, nil
}

// DeleteCategory deletes a category record. Titles referencing the category
// fall back to the default category via the ON DELETE SET DEFAULT foreign key;
// they are never deleted alongside it.
func (r *repository) DeleteCategory(slug string) error {
	query := `
		DELETE FROM categories
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
