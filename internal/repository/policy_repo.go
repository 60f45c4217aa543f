package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"insurance-portal/internal/model"
)

type PolicyRepository struct {
	pool *pgxpool.Pool
}

func NewPolicyRepository(pool *pgxpool.Pool) *PolicyRepository {
	return &PolicyRepository{pool: pool}
}

// FindByUserAndID filters on owner and id in the same query, so a missing
// policy and somebody else's policy are indistinguishable to the caller.
func (r *PolicyRepository) FindByUserAndID(ctx context.Context, userID int64, policyID int64) (model.Policy, error) {
	var p model.Policy
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, policy_name, status, outstanding_amount, term_months,
		        payment_due_date, created_at, updated_at
		 FROM policies WHERE id = $1 AND user_id = $2`, policyID, userID).
		Scan(&p.ID, &p.UserID, &p.PolicyName, &p.Status, &p.OutstandingAmount,
			&p.TermMonths, &p.PaymentDueDate, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Policy{}, model.ErrPolicyNotFound
	}
	if err != nil {
		return model.Policy{}, fmt.Errorf("find policy by user and id: %w", err)
	}
	return p, nil
}

func (r *PolicyRepository) FindByUser(ctx context.Context, userID int64) (model.Policy, error) {
	var p model.Policy
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, policy_name, status, outstanding_amount, term_months,
		        payment_due_date, created_at, updated_at
		 FROM policies WHERE user_id = $1
		 ORDER BY id
		 LIMIT 1`, userID).
		Scan(&p.ID, &p.UserID, &p.PolicyName, &p.Status, &p.OutstandingAmount,
			&p.TermMonths, &p.PaymentDueDate, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Policy{}, model.ErrPolicyNotFound
	}
	if err != nil {
		return model.Policy{}, fmt.Errorf("find policy by user: %w", err)
	}
	return p, nil
}
