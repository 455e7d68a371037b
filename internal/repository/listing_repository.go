package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gamerhub/marketplace/internal/domain"
)

// ListingFilter captures catalog search parameters.
type ListingFilter struct {
	SellerID   *string
	Game       *string
	Category   *domain.ListingCategory
	Statuses   []domain.ListingStatus
	SearchTerm *string
	MaxPrice   *int64
	Limit      int
	Offset     int
}

// ListingRepository encapsulates listing persistence.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]domain.Listing, error)
}

type listingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository instantiates repository.
func NewListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &listingRepository{pool: pool}
}

const listingColumns = `id, seller_id, title, description, game, category, price_cents, image_url, status, created_at, updated_at`

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	const query = `
        INSERT INTO listings (seller_id, title, description, game, category, price_cents, image_url, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		listing.SellerID,
		listing.Title,
		listing.Description,
		listing.Game,
		listing.Category,
		listing.PriceCents,
		listing.ImageURL,
		listing.Status,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

func (r *listingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id=$1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	listings, err := scanListings(rows)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &listings[0], nil
}

func (r *listingRepository) List(ctx context.Context, filter ListingFilter) ([]domain.Listing, error) {
	query, args := buildListingQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListings(rows)
}

func buildListingQuery(filter ListingFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.SellerID != nil {
		args = append(args, *filter.SellerID)
		clauses = append(clauses, fmt.Sprintf("seller_id=$%d", len(args)))
	}
	if filter.Game != nil && strings.TrimSpace(*filter.Game) != "" {
		args = append(args, strings.ToLower(strings.TrimSpace(*filter.Game)))
		clauses = append(clauses, fmt.Sprintf("LOWER(game)=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		clauses = append(clauses, fmt.Sprintf("price_cents <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)

	query := fmt.Sprintf(`SELECT %s FROM listings WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		listingColumns, strings.Join(clauses, " AND "), limit, offset)
	return query, args
}

func scanListings(rows pgx.Rows) ([]domain.Listing, error) {
	var result []domain.Listing
	for rows.Next() {
		var listing domain.Listing
		if err := rows.Scan(
			&listing.ID,
			&listing.SellerID,
			&listing.Title,
			&listing.Description,
			&listing.Game,
			&listing.Category,
			&listing.PriceCents,
			&listing.ImageURL,
			&listing.Status,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, listing)
	}
	return result, rows.Err()
}
