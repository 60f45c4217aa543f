package service

import (
	"context"

	"insurance-portal/internal/model"
)

type PolicyService struct {
	policies PolicyStore
}

func NewPolicyService(policies PolicyStore) *PolicyService {
	return &PolicyService{policies: policies}
}

// FindUserPolicy returns the caller's policy. Policies are created by an
// external underwriting process; this service only reads them.
func (s *PolicyService) FindUserPolicy(ctx context.Context, userID int64) (model.Policy, error) {
	return s.policies.FindByUser(ctx, userID)
}
