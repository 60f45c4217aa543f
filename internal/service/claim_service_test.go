package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-portal/internal/model"
)

func alicePolicy() model.Policy {
	return model.Policy{
		ID:             100,
		UserID:         1,
		PolicyName:     "Comprehensive Auto",
		Status:         "Active",
		TermMonths:     12,
		PaymentDueDate: time.Now().UTC().AddDate(0, 1, 0),
	}
}

func TestClaimService_Submit(t *testing.T) {
	policies := newFakePolicyStore(alicePolicy())
	claims := newFakeClaimStore()
	svc := NewClaimService(policies, claims)

	claim, err := svc.Submit(context.Background(), 1, 100, "Toyota Corolla 2020", "rear bumper dented")
	require.NoError(t, err)

	// Callers always observe Created; Pending is transient insert bookkeeping.
	assert.Equal(t, model.ClaimStatusCreated, claim.Status)
	assert.Equal(t, int64(1), claim.UserID)
	assert.Equal(t, int64(100), claim.PolicyID)
	assert.NotZero(t, claim.ID)

	// The persisted row was inserted as Pending.
	require.Len(t, claims.claims, 1)
	assert.Equal(t, model.ClaimStatusPending, claims.claims[0].Status)
}

func TestClaimService_SubmitForeignPolicy(t *testing.T) {
	// Policy 100 belongs to user 1; user 2 must get the same not-found as for
	// a policy that does not exist at all.
	policies := newFakePolicyStore(alicePolicy())
	svc := NewClaimService(policies, newFakeClaimStore())
	ctx := context.Background()

	_, errForeign := svc.Submit(ctx, 2, 100, "Honda Civic", "scratched door")
	_, errMissing := svc.Submit(ctx, 2, 999, "Honda Civic", "scratched door")

	assert.ErrorIs(t, errForeign, model.ErrPolicyNotFound)
	assert.ErrorIs(t, errMissing, model.ErrPolicyNotFound)
	assert.Equal(t, errForeign.Error(), errMissing.Error())
}

func TestClaimService_SubmitInvalidInput(t *testing.T) {
	svc := NewClaimService(newFakePolicyStore(alicePolicy()), newFakeClaimStore())
	ctx := context.Background()

	_, err := svc.Submit(ctx, 1, 100, "", "damage")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = svc.Submit(ctx, 1, 100, "vehicle", "  ")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = svc.Submit(ctx, 1, 0, "vehicle", "damage")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestClaimService_StatusOwnershipIsolation(t *testing.T) {
	policies := newFakePolicyStore(alicePolicy())
	claims := newFakeClaimStore()
	svc := NewClaimService(policies, claims)
	ctx := context.Background()

	claim, err := svc.Submit(ctx, 1, 100, "Toyota Corolla 2020", "rear bumper dented")
	require.NoError(t, err)

	status, err := svc.Status(ctx, claim.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, claim.ID, status.ClaimID)

	// User 2 asking for user 1's claim gets not-found, never the data.
	_, err = svc.Status(ctx, claim.ID, 2)
	assert.ErrorIs(t, err, model.ErrClaimNotFound)
}

func TestClaimService_StatusUnknownClaim(t *testing.T) {
	svc := NewClaimService(newFakePolicyStore(), newFakeClaimStore())

	_, err := svc.Status(context.Background(), 12345, 1)
	assert.ErrorIs(t, err, model.ErrClaimNotFound)
}

func TestClaimService_ListEmpty(t *testing.T) {
	svc := NewClaimService(newFakePolicyStore(), newFakeClaimStore())

	claims, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Empty(t, claims)
}

func TestClaimService_SubmitStatusListScenario(t *testing.T) {
	policies := newFakePolicyStore(alicePolicy())
	claims := newFakeClaimStore()
	svc := NewClaimService(policies, claims)
	ctx := context.Background()

	submitted, err := svc.Submit(ctx, 1, 100, "Toyota Corolla 2020", "rear bumper dented")
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatusCreated, submitted.Status)

	listed, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, submitted.ID, listed[0].ID)
}
