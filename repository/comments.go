package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/kritika/data"
)

type comments interface {
	CreateComment(comment *data.Comment) error
	GetComment(reviewID, commentID int64) (*data.Comment, error)
	GetAllCommentsForReview(reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error)
	UpdateComment(comment *data.Comment) error
	DeleteComment(reviewID, commentID int64) error
}

// CreateComment creates a comment record.
func (r *repository) CreateComment(comment *data.Comment) error {
	query := `
		INSERT INTO comments (review_id, user_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version`
	args := []interface{}{comment.ReviewID, comment.UserID, comment.Text}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&comment.ID, &comment.CreatedAt, &comment.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: insert or update on table "comments" violates foreign key constraint "comments_review_id_fkey"`:
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// GetComment retrieves a comment record scoped to a review.
func (r *repository) GetComment(reviewID, commentID int64) (*data.Comment, error) {
	if reviewID < 1 || commentID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT comments.id, comments.review_id, comments.user_id, users.username, comments.text, comments.created_at, comments.version
		FROM comments
		INNER JOIN users ON comments.user_id = users.id
		WHERE comments.id = $1 AND comments.review_id = $2`
	var comment data.Comment
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, commentID, reviewID).Scan(
		&comment.ID,
		&comment.ReviewID,
		&comment.UserID,
		&comment.Author,
		&comment.Text,
		&comment.CreatedAt,
		&comment.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &comment, nil
}

// GetAllCommentsForReview retrieves a paginated record of all comments for a review.
func (r *repository) GetAllCommentsForReview(reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error) {
	if reviewID < 1 {
		return nil, data.Metadata{}, ErrRecordNotFound
	}
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), comments.id, comments.review_id, comments.user_id, users.username, comments.text, comments.created_at AS pub_date, comments.version
		FROM comments
		INNER JOIN users ON comments.user_id = users.id
		WHERE comments.review_id = $1
		ORDER BY %s %s, comments.id ASC
		LIMIT $2 OFFSET $3`,
		filters.SortColumn(), filters.SortDirection(),
	)
	args := []interface{}{reviewID, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	commentList := []*data.Comment{}
	for rows.Next() {
		var comment data.Comment
		err := rows.Scan(
			&totalRecords,
			&comment.ID,
			&comment.ReviewID,
			&comment.UserID,
			&comment.Author,
			&comment.Text,
			&comment.CreatedAt,
			&comment.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		commentList = append(commentList, &comment)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return commentList, metadata, nil
}

// UpdateComment updates a comment record.
func (r *repository) UpdateComment(comment *data.Comment) error {
	query := `
		UPDATE comments
		SET text = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version`
	args := []interface{}{comment.Text, comment.ID, comment.Version}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&comment.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteComment deletes a comment record scoped to a review.
func (r *repository) DeleteComment(reviewID, commentID int64) error {
	if reviewID < 1 || commentID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM comments
		WHERE id = $1 AND review_id = $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, commentID, reviewID)
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
