package service

import (
	"context"
	"strings"
	"time"

	"insurance-portal/internal/model"
)

// In-memory stores used as substitutes for the pgx repositories. They honor
// the same contracts: not-found sentinels, ownership-scoped lookups, and a
// uniqueness guarantee on Create.
type fakeUserStore struct {
	users  map[int64]model.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]model.User{}, nextID: 1}
}

func (s *fakeUserStore) FindByID(_ context.Context, id int64) (model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	for _, user := range s.users {
		if strings.EqualFold(user.Username, strings.TrimSpace(username)) {
			return user, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *fakeUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.FindByUsername(ctx, username)
	return err == nil, nil
}

func (s *fakeUserStore) Create(ctx context.Context, u model.User) (model.User, error) {
	if exists, _ := s.ExistsByUsername(ctx, u.Username); exists {
		return model.User{}, model.ErrUserAlreadyExists
	}

	now := time.Now().UTC()
	u.ID = s.nextID
	u.CreatedAt = now
	u.UpdatedAt = now
	s.nextID++
	s.users[u.ID] = u
	return u, nil
}

type fakePolicyStore struct {
	policies map[int64]model.Policy
}

func newFakePolicyStore(policies ...model.Policy) *fakePolicyStore {
	s := &fakePolicyStore{policies: map[int64]model.Policy{}}
	for _, p := range policies {
		s.policies[p.ID] = p
	}
	return s
}

func (s *fakePolicyStore) FindByUserAndID(_ context.Context, userID int64, policyID int64) (model.Policy, error) {
	policy, ok := s.policies[policyID]
	if !ok || policy.UserID != userID {
		return model.Policy{}, model.ErrPolicyNotFound
	}
	return policy, nil
}

func (s *fakePolicyStore) FindByUser(_ context.Context, userID int64) (model.Policy, error) {
	for _, policy := range s.policies {
		if policy.UserID == userID {
			return policy, nil
		}
	}
	return model.Policy{}, model.ErrPolicyNotFound
}

type fakeClaimStore struct {
	claims []model.Claim
	nextID int64
}

func newFakeClaimStore() *fakeClaimStore {
	return &fakeClaimStore{nextID: 1}
}

func (s *fakeClaimStore) Insert(_ context.Context, c model.Claim) (model.Claim, error) {
	now := time.Now().UTC()
	c.ID = s.nextID
	c.CreatedAt = now
	c.UpdatedAt = now
	s.nextID++
	s.claims = append(s.claims, c)
	return c, nil
}

func (s *fakeClaimStore) FindByIDAndUser(_ context.Context, id int64, userID int64) (model.Claim, error) {
	for _, claim := range s.claims {
		if claim.ID == id && claim.UserID == userID {
			return claim, nil
		}
	}
	return model.Claim{}, model.ErrClaimNotFound
}

func (s *fakeClaimStore) FindAllByUser(_ context.Context, userID int64) ([]model.Claim, error) {
	out := make([]model.Claim, 0)
	for _, claim := range s.claims {
		if claim.UserID == userID {
			out = append(out, claim)
		}
	}
	return out, nil
}
