package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gamerhub/marketplace/internal/domain"
)

// BoostRepository persists boosting requests and the bids placed on them.
type BoostRepository interface {
	CreateRequest(ctx context.Context, req *domain.BoostRequest) error
	GetRequest(ctx context.Context, id string) (*domain.BoostRequest, error)
	UpdateRequestStatus(ctx context.Context, id string, status domain.BoostStatus) error
	CreateBid(ctx context.Context, bid *domain.Bid) error
	ListBids(ctx context.Context, boostID string) ([]domain.Bid, error)
}

type boostRepository struct {
	pool *pgxpool.Pool
}

// NewBoostRepository instantiates repository.
func NewBoostRepository(pool *pgxpool.Pool) BoostRepository {
	return &boostRepository{pool: pool}
}

func (r *boostRepository) CreateRequest(ctx context.Context, req *domain.BoostRequest) error {
	const query = `
        INSERT INTO boost_requests (requester_id, game, current_rank, target_rank, notes, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		req.RequesterID,
		req.Game,
		req.CurrentRank,
		req.TargetRank,
		req.Notes,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *boostRepository) GetRequest(ctx context.Context, id string) (*domain.BoostRequest, error) {
	const query = `
        SELECT id, requester_id, game, current_rank, target_rank, notes, status, created_at, updated_at
        FROM boost_requests WHERE id=$1`
	var req domain.BoostRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.RequesterID,
		&req.Game,
		&req.CurrentRank,
		&req.TargetRank,
		&req.Notes,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *boostRepository) UpdateRequestStatus(ctx context.Context, id string, status domain.BoostStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE boost_requests SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *boostRepository) CreateBid(ctx context.Context, bid *domain.Bid) error {
	const query = `
        INSERT INTO bids (boost_id, bidder_id, amount_cents, estimated_hours, message)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		bid.BoostID,
		bid.BidderID,
		bid.AmountCents,
		bid.EstimatedHours,
		bid.Message,
	).Scan(&bid.ID, &bid.CreatedAt)
}

func (r *boostRepository) ListBids(ctx context.Context, boostID string) ([]domain.Bid, error) {
	const query = `
        SELECT id, boost_id, bidder_id, amount_cents, estimated_hours, message, created_at
        FROM bids WHERE boost_id=$1 ORDER BY amount_cents ASC, created_at ASC`
	rows, err := r.pool.Query(ctx, query, boostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []domain.Bid
	for rows.Next() {
		var bid domain.Bid
		if err := rows.Scan(
			&bid.ID,
			&bid.BoostID,
			&bid.BidderID,
			&bid.AmountCents,
			&bid.EstimatedHours,
			&bid.Message,
			&bid.CreatedAt,
		); err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	return bids, rows.Err()
}
