package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gamerhub/marketplace/internal/domain"
)

// FeedbackRepository persists listing reviews.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	ListByListing(ctx context.Context, listingID string, limit, offset int) ([]domain.Feedback, error)
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository instantiates repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO feedback (listing_id, author_id, rating, comment)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		feedback.ListingID,
		feedback.AuthorID,
		feedback.Rating,
		feedback.Comment,
	).Scan(&feedback.ID, &feedback.CreatedAt)
}

func (r *feedbackRepository) ListByListing(ctx context.Context, listingID string, limit, offset int) ([]domain.Feedback, error) {
	limit, offset = pageBounds(limit, offset)
	const query = `
        SELECT id, listing_id, author_id, rating, comment, created_at
        FROM feedback WHERE listing_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, listingID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Feedback
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(&fb.ID, &fb.ListingID, &fb.AuthorID, &fb.Rating, &fb.Comment, &fb.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, fb)
	}
	return result, rows.Err()
}
