package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"insurance-portal/internal/model"
)

type ClaimRepository struct {
	pool *pgxpool.Pool
}

func NewClaimRepository(pool *pgxpool.Pool) *ClaimRepository {
	return &ClaimRepository{pool: pool}
}

func (r *ClaimRepository) Insert(ctx context.Context, c model.Claim) (model.Claim, error) {
	now := time.Now().UTC()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO claims (user_id, policy_id, status, vehicle, damage_description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 RETURNING id, created_at, updated_at`,
		c.UserID, c.PolicyID, c.Status, c.Vehicle, c.DamageDescription, now).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.Claim{}, fmt.Errorf("insert claim: %w", err)
	}
	return c, nil
}

// FindByIDAndUser enforces ownership inside the query itself; fetching by id
// alone and checking ownership afterwards would leak other users' claim ids.
func (r *ClaimRepository) FindByIDAndUser(ctx context.Context, id int64, userID int64) (model.Claim, error) {
	var c model.Claim
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, policy_id, status, vehicle, damage_description, created_at, updated_at
		 FROM claims WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&c.ID, &c.UserID, &c.PolicyID, &c.Status, &c.Vehicle,
			&c.DamageDescription, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Claim{}, model.ErrClaimNotFound
	}
	if err != nil {
		return model.Claim{}, fmt.Errorf("find claim by id and user: %w", err)
	}
	return c, nil
}

func (r *ClaimRepository) FindAllByUser(ctx context.Context, userID int64) ([]model.Claim, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, policy_id, status, vehicle, damage_description, created_at, updated_at
		 FROM claims WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()

	claims := make([]model.Claim, 0)
	for rows.Next() {
		var c model.Claim
		if err := rows.Scan(&c.ID, &c.UserID, &c.PolicyID, &c.Status, &c.Vehicle,
			&c.DamageDescription, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
