package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-management/internal/domain"
)

// 完整流转：USER 建单 → VERIFIER 核验 → ADMIN 批准 → VERIFIER 试图再批被拒
func TestLoanWorkflowScenario(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newLoanService(t, db)
	ctx := context.Background()

	userA := seedUser(t, db, "a@example.com", domain.RoleUser)
	verifierB := seedUser(t, db, "b@example.com", domain.RoleVerifier)
	adminC := seedUser(t, db, "c@example.com", domain.RoleAdmin)

	loan, err := svc.Create(ctx, identityOf(userA), 5000, "medical")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, loan.Status)
	assert.Equal(t, userA.ID, loan.OwnerID)
	assert.Nil(t, loan.VerifierID)

	loan, err = svc.Verify(ctx, identityOf(verifierB), loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVerified, loan.Status)
	require.NotNil(t, loan.VerifierID)
	assert.Equal(t, verifierB.ID, *loan.VerifierID)

	loan, err = svc.UpdateStatus(ctx, identityOf(adminC), loan.ID, "APPROVED")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, loan.Status)
	// ADMIN 操作不动 verifierId
	require.NotNil(t, loan.VerifierID)
	assert.Equal(t, verifierB.ID, *loan.VerifierID)

	// VERIFIER 无论当前状态如何都不能置 APPROVED
	_, err = svc.UpdateStatus(ctx, identityOf(verifierB), loan.ID, "APPROVED")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	var got domain.LoanApplication
	require.NoError(t, db.First(&got, "id = ?", loan.ID).Error)
	assert.Equal(t, domain.StatusApproved, got.Status)
}

func TestList_ScopedByRole(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newLoanService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com", domain.RoleUser)
	other := seedUser(t, db, "other@example.com", domain.RoleUser)
	verifier := seedUser(t, db, "v@example.com", domain.RoleVerifier)
	verifier2 := seedUser(t, db, "v2@example.com", domain.RoleVerifier)
	admin := seedUser(t, db, "admin@example.com", domain.RoleAdmin)

	mine, err := svc.Create(ctx, identityOf(owner), 1000, "car")
	require.NoError(t, err)
	theirs, err := svc.Create(ctx, identityOf(other), 2000, "house")
	require.NoError(t, err)

	// verifier 驳回 other 的单子：不再 PENDING，但 verifier 经手过
	_, err = svc.Reject(ctx, identityOf(verifier), theirs.ID)
	require.NoError(t, err)

	ids := func(ls []domain.LoanApplication) []string {
		out := make([]string, 0, len(ls))
		for _, l := range ls {
			out = append(out, l.ID)
		}
		return out
	}

	// ADMIN：全量，带三方摘要
	loans, err := svc.List(ctx, identityOf(admin))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{mine.ID, theirs.ID}, ids(loans))
	for _, l := range loans {
		require.NotNil(t, l.Owner)
	}

	// VERIFIER：自己经手的 + PENDING
	loans, err = svc.List(ctx, identityOf(verifier))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{mine.ID, theirs.ID}, ids(loans))

	// 另一个 VERIFIER：只看得到 PENDING 的
	loans, err = svc.List(ctx, identityOf(verifier2))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{mine.ID}, ids(loans))

	// USER：只看自己的
	loans, err = svc.List(ctx, identityOf(owner))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{mine.ID}, ids(loans))

	loans, err = svc.List(ctx, identityOf(other))
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, theirs.ID, loans[0].ID)
	require.NotNil(t, loans[0].Verifier) // 带核验人摘要
	assert.Equal(t, verifier.ID, loans[0].Verifier.ID)
}

func TestUpdateStatus_Rules(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newLoanService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "o@example.com", domain.RoleUser)
	verifier := seedUser(t, db, "v@example.com", domain.RoleVerifier)
	admin := seedUser(t, db, "a@example.com", domain.RoleAdmin)

	loan, err := svc.Create(ctx, identityOf(owner), 3000, "")
	require.NoError(t, err)

	// 非法状态值
	_, err = svc.UpdateStatus(ctx, identityOf(admin), loan.ID, "ESCALATED")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	// 普通用户不许任何状态变更
	for _, s := range []string{"PENDING", "VERIFIED", "APPROVED", "REJECTED"} {
		_, err = svc.UpdateStatus(ctx, identityOf(owner), loan.ID, s)
		assert.ErrorIs(t, err, domain.ErrForbidden, "status %s", s)
	}

	// 校验失败不落库
	var got domain.LoanApplication
	require.NoError(t, db.First(&got, "id = ?", loan.ID).Error)
	assert.Equal(t, domain.StatusPending, got.Status)

	// VERIFIER 走通用口径置 VERIFIED：盖章
	up, err := svc.UpdateStatus(ctx, identityOf(verifier), loan.ID, "VERIFIED")
	require.NoError(t, err)
	require.NotNil(t, up.VerifierID)
	assert.Equal(t, verifier.ID, *up.VerifierID)

	// 幂等：同一目标状态重复提交，终态一致
	again, err := svc.UpdateStatus(ctx, identityOf(verifier), loan.ID, "VERIFIED")
	require.NoError(t, err)
	assert.Equal(t, up.Status, again.Status)
	assert.Equal(t, *up.VerifierID, *again.VerifierID)

	// 不存在的单子
	_, err = svc.UpdateStatus(ctx, identityOf(admin), "no-such-id", "APPROVED")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerifyReject_VerifierOnly(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newLoanService(t, db)
	ctx := context.Background()

	owner := seedUser(t, db, "o@example.com", domain.RoleUser)
	admin := seedUser(t, db, "a@example.com", domain.RoleAdmin)
	verifier := seedUser(t, db, "v@example.com", domain.RoleVerifier)

	loan, err := svc.Create(ctx, identityOf(owner), 800, "laptop")
	require.NoError(t, err)

	for _, id := range []domain.Identity{identityOf(owner), identityOf(admin)} {
		_, err = svc.Verify(ctx, id, loan.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		_, err = svc.Reject(ctx, id, loan.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	}

	rejected, err := svc.Reject(ctx, identityOf(verifier), loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.VerifierID)
	assert.Equal(t, verifier.ID, *rejected.VerifierID)
}

func TestCreate_AnyAuthenticatedRole(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newLoanService(t, db)
	ctx := context.Background()

	for i, role := range []domain.Role{domain.RoleUser, domain.RoleVerifier, domain.RoleAdmin} {
		u := seedUser(t, db, string(rune('p'+i))+"@example.com", role)
		loan, err := svc.Create(ctx, identityOf(u), 100, "misc")
		require.NoError(t, err)
		assert.Equal(t, u.ID, loan.OwnerID)
		assert.Equal(t, domain.StatusPending, loan.Status)
	}

	_, err := svc.Create(ctx, domain.Identity{}, 100, "misc")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
